package e2etest

import (
	"github.com/myrjola/mattepaint/internal/errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// plainHTTPJar stores cookies like a browser would, except that it drops the Secure attribute. nosurf marks its
// CSRF cookie Secure and the test server speaks plain HTTP, so a regular jar would never send the cookie back.
type plainHTTPJar struct {
	http.CookieJar
}

func newUnsafeCookieJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return plainHTTPJar{CookieJar: jar}, nil
}

func (j plainHTTPJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	insecure := make([]*http.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		c := *cookie
		c.Secure = false
		insecure = append(insecure, &c)
	}
	j.CookieJar.SetCookies(u, insecure)
}
