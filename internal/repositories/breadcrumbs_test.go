package repositories_test

import (
	"github.com/myrjola/mattepaint/internal/models"
	"github.com/myrjola/mattepaint/internal/repositories"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestBreadcrumbStore(t *testing.T) {
	store := repositories.NewBreadcrumbStore()
	t.Cleanup(store.Close)

	require.Empty(t, store.Get())

	crumbs := []models.Breadcrumb{
		{Label: "Home", To: ""},
		{Label: "Gallery", To: "/gallery"},
	}
	store.Set(crumbs)
	require.Equal(t, crumbs, store.Get())

	// The store keeps its own copy.
	crumbs[0].Label = "Changed"
	got := store.Get()
	require.Equal(t, "Home", got[0].Label)
	got[1].Label = "Changed"
	require.Equal(t, "Gallery", store.Get()[1].Label)

	store.Set(nil)
	require.Empty(t, store.Get())
}

func TestBreadcrumbStore_Subscribe(t *testing.T) {
	store := repositories.NewBreadcrumbStore()
	t.Cleanup(store.Close)

	trail, unsubscribe := store.Subscribe()
	defer unsubscribe()
	require.Empty(t, <-trail)

	want := []models.Breadcrumb{{Label: "Home", To: "/"}, {Label: "HDRIs", To: "/hdri"}}
	store.Set(want)

	select {
	case got := <-trail:
		require.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("no notification after Set")
	}
}
