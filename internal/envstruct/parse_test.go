package envstruct_test

import (
	"github.com/myrjola/mattepaint/internal/envstruct"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func noEnv(_ string) (string, bool) { return "", false }

func TestPopulate(t *testing.T) {
	type args struct {
		v         any
		lookupEnv func(string) (string, bool)
	}
	tests := []struct {
		name    string
		args    args
		want    any
		wantErr error
	}{
		{
			name:    "nil",
			args:    args{v: nil, lookupEnv: noEnv},
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name:    "not pointer",
			args:    args{v: struct{}{}, lookupEnv: noEnv},
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name:    "empty struct",
			args:    args{v: &struct{}{}, lookupEnv: noEnv},
			want:    &struct{}{},
			wantErr: nil,
		},
		{
			name: "empty env",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr string `env:"MATTEPAINT_ADDR"`
				}{},
				lookupEnv: noEnv,
			},
			wantErr: envstruct.ErrEnvNotSet,
		},
		{
			name: "env is set",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr string `env:"MATTEPAINT_ADDR"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "localhost:0", true },
			},
			want:    &struct{ Addr string }{Addr: "localhost:0"},
			wantErr: nil,
		},
		{
			name: "picks correct env variable",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVar      string `env:"ENV_VAR"`
					EnvVar2     string `env:"ENV_VAR2"`
					OtherValue  string
					OtherValue2 int
				}{},
				lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			},
			want: &struct {
				EnvVar      string
				EnvVar2     string
				OtherValue  string
				OtherValue2 int
			}{EnvVar: "env_var", EnvVar2: "env_var2", OtherValue: "", OtherValue2: 0},
			wantErr: nil,
		},
		{
			name: "handles default values of every supported type",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					URL     string        `env:"MATTEPAINT_SQLITE_URL" envDefault:"./mattepaint.sqlite"`
					Latency time.Duration `env:"MATTEPAINT_LIST_LATENCY" envDefault:"800ms"`
					Readers int           `env:"MATTEPAINT_READERS" envDefault:"10"`
					Verbose bool          `env:"MATTEPAINT_VERBOSE" envDefault:"true"`
				}{},
				lookupEnv: noEnv,
			},
			want: &struct {
				URL     string
				Latency time.Duration
				Readers int
				Verbose bool
			}{URL: "./mattepaint.sqlite", Latency: 800 * time.Millisecond, Readers: 10, Verbose: true},
			wantErr: nil,
		},
		{
			name: "env overrides duration default",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Latency time.Duration `env:"MATTEPAINT_LIST_LATENCY" envDefault:"800ms"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "0s", true },
			},
			want:    &struct{ Latency time.Duration }{Latency: 0},
			wantErr: nil,
		},
		{
			name: "invalid duration",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Latency time.Duration `env:"MATTEPAINT_LIST_LATENCY"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "soon", true },
			},
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "invalid int",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Readers int `env:"MATTEPAINT_READERS"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "ten", true },
			},
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "unsupported type",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Ratio float64 `env:"MATTEPAINT_RATIO"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "0.5", true },
			},
			wantErr: envstruct.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.args.v
			err := envstruct.Populate(v, tt.args.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.EqualValues(t, tt.want, v)
			}
		})
	}
}
