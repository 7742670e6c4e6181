package table

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	sdk "github.com/xataconnect/sdk"
	"github.com/xataconnect/sdk/apimock"
)

func newClient(t *testing.T, cfg apimock.Config) (*TableClient, *apimock.Mock) {
	t.Helper()

	mock, err := apimock.New(cfg)
	require.NoError(t, err)

	client, err := New(Config{Call: mock.Call})
	require.NoError(t, err)
	return client, mock
}

func TestGetSchema(t *testing.T) {
	t.Parallel()

	client, _ := newClient(t, apimock.Config{
		ExpectedMethod: "GET",
		ExpectedPath:   "/tables/Users/schema",
		Response:       apimock.OK(`{"columns":[{"name":"name","type":"string"}]}`),
	})

	resp, err := client.GetSchema("Users")
	require.NoError(t, err)
	require.Equal(t, "name", resp.Get("columns.0.name").String())
}

func TestCreate_TwoStep(t *testing.T) {
	t.Parallel()

	var paths []string
	client, err := New(Config{Call: func(method, path, contentType string, body []byte) (*sdk.Response, error) {
		paths = append(paths, method+" "+path)
		return &sdk.Response{StatusCode: http.StatusOK, Status: "200 OK", Body: []byte(`{}`)}, nil
	}})
	require.NoError(t, err)

	created, applied, err := client.Create("Users", map[string]any{
		"columns": []map[string]any{{"name": "name", "type": "string"}},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, applied)
	require.Equal(t, []string{"PUT /tables/Users", "PUT /tables/Users/schema"}, paths)
}

func TestCreate_StopsAfterFailedCreate(t *testing.T) {
	t.Parallel()

	var calls int
	client, err := New(Config{Call: func(method, path, contentType string, body []byte) (*sdk.Response, error) {
		calls++
		return &sdk.Response{
			StatusCode: http.StatusUnprocessableEntity,
			Status:     "422 Unprocessable Entity",
			Body:       []byte(`{"message":"table name is reserved"}`),
		}, nil
	}})
	require.NoError(t, err)

	created, applied, err := client.Create("Users", map[string]any{})
	require.Nil(t, created)
	require.Nil(t, applied)
	require.Equal(t, 1, calls)

	var serverErr *sdk.ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, 422, serverErr.StatusCode)
	require.Equal(t, "table name is reserved", serverErr.Message)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	client, _ := newClient(t, apimock.Config{
		ExpectedMethod: "DELETE",
		ExpectedPath:   "/tables/Users",
		Response:       apimock.OK(`{}`),
	})

	_, err := client.Delete("Users")
	require.NoError(t, err)
}

func TestColumns(t *testing.T) {
	t.Parallel()

	t.Run("add", func(t *testing.T) {
		t.Parallel()

		client, _ := newClient(t, apimock.Config{
			ExpectedMethod: "POST",
			ExpectedPath:   "/tables/Users/columns",
			PayloadValidator: func(payload []byte) error {
				if gjson.GetBytes(payload, "name").String() != "age" {
					return errors.New("column name mismatch")
				}
				return nil
			},
			Response: apimock.OK(`{"migrationID":"mig_1"}`),
		})

		_, err := client.AddColumn("Users", map[string]any{"name": "age", "type": "int"})
		require.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		client, _ := newClient(t, apimock.Config{
			ExpectedMethod: "DELETE",
			ExpectedPath:   "/tables/Users/columns/age",
			Response:       apimock.OK(`{"migrationID":"mig_2"}`),
		})

		_, err := client.DeleteColumn("Users", "age")
		require.NoError(t, err)
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		client, _ := newClient(t, apimock.Config{
			ExpectedMethod: "GET",
			ExpectedPath:   "/tables/Users/columns",
			Response:       apimock.OK(`{"columns":[{"name":"name","type":"string"}]}`),
		})

		resp, err := client.GetColumns("Users")
		require.NoError(t, err)
		require.Len(t, resp.Get("columns").Array(), 1)
	})
}

func TestValidation(t *testing.T) {
	t.Parallel()

	client, mock := newClient(t, apimock.Config{})

	_, err := client.GetSchema("")
	require.ErrorIs(t, err, ErrInvalidTable)

	_, _, err = client.Create("", nil)
	require.ErrorIs(t, err, ErrInvalidTable)

	_, err = client.AddColumn("Users", nil)
	require.ErrorIs(t, err, ErrInvalidColumn)

	_, err = client.DeleteColumn("Users", "")
	require.ErrorIs(t, err, ErrInvalidColumn)

	require.Zero(t, mock.Calls)
}
