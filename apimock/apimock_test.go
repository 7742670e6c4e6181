package apimock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testCase struct {
	name    string
	cfg     Config
	method  string
	path    string
	payload []byte
	want    string
	wantErr error
}

var errMock = errors.New("mock error")

func TestMock(t *testing.T) {
	t.Parallel()

	tt := []testCase{
		{
			name: "matching call returns the scripted response",
			cfg: Config{
				ExpectedMethod: "POST",
				ExpectedPath:   "/tables/Users/query",
				Response:       OK(`{"records":[]}`),
			},
			method:  "POST",
			path:    "/tables/Users/query",
			payload: []byte(`{}`),
			want:    `{"records":[]}`,
		},
		{
			name:    "custom failure error",
			cfg:     Config{Fail: true, Error: errMock},
			method:  "GET",
			path:    "/whatever",
			wantErr: errMock,
		},
		{
			name:    "default failure error",
			cfg:     Config{Fail: true},
			method:  "GET",
			path:    "/whatever",
			wantErr: ErrOperationFailed,
		},
		{
			name:    "method mismatch",
			cfg:     Config{ExpectedMethod: "POST"},
			method:  "GET",
			path:    "/whatever",
			wantErr: ErrUnexpectedMethod,
		},
		{
			name:    "path mismatch",
			cfg:     Config{ExpectedPath: "/tables/Users/query"},
			method:  "POST",
			path:    "/tables/Orders/query",
			wantErr: ErrUnexpectedPath,
		},
		{
			name: "payload validator rejection",
			cfg: Config{
				PayloadValidator: func(p []byte) error {
					if len(p) == 0 {
						return errMock
					}
					return nil
				},
			},
			method:  "POST",
			path:    "/whatever",
			wantErr: errMock,
		},
		{
			name:   "unset fields are wildcards",
			cfg:    Config{},
			method: "PATCH",
			path:   "/anything",
			want:   "",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock, err := New(tc.cfg)
			require.NoError(t, err)

			resp, err := mock.Call(tc.method, tc.path, "application/json", tc.payload)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.True(t, resp.IsSuccess())
			require.Equal(t, tc.want, string(resp.Body))
			require.Equal(t, 1, mock.Calls)
		})
	}
}

func TestFailure(t *testing.T) {
	t.Parallel()

	resp := Failure(422, "column does not exist")()
	require.False(t, resp.IsSuccess())
	require.Equal(t, 422, resp.StatusCode)
	require.Equal(t, "column does not exist", resp.ServerMessage())
}
