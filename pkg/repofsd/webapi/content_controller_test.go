package webapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/plugworks/repofs/pkg/repo/factory"
	"github.com/plugworks/repofs/pkg/repo/registry"
)

// setupEchoContext creates a test Echo context with the given request
func setupEchoContext(method, target string, body []byte, queryParams map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))

	q := req.URL.Query()
	for key, value := range queryParams {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return c, rec
}

func newTestFactory() *factory.ContentAccessFactory {
	f := factory.NewContentAccessFactory("/tmp/cpf", "cde", registry.NewProviderRegistry(nil))
	f.SetStorageFs(afero.NewMemMapFs())
	return f
}

func TestSystemContentController(t *testing.T) {
	controller := NewSystemContentController(newTestFactory())

	saveCtx, saveRec := setupEchoContext(http.MethodPut, "/api/system/cde/file", []byte("hi"), map[string]string{"path": "a.txt"})
	saveCtx.SetParamNames("plugin")
	saveCtx.SetParamValues("cde")
	require.NoError(t, controller.SaveFileHandler(saveCtx))
	require.Equal(t, http.StatusCreated, saveRec.Code)

	getCtx, getRec := setupEchoContext(http.MethodGet, "/api/system/cde/file", nil, map[string]string{"path": "a.txt"})
	getCtx.SetParamNames("plugin")
	getCtx.SetParamValues("cde")
	require.NoError(t, controller.GetFileHandler(getCtx))
	require.Equal(t, http.StatusOK, getRec.Code)
	require.Equal(t, "hi", getRec.Body.String())

	existsCtx, existsRec := setupEchoContext(http.MethodGet, "/api/system/cde/file/exists", nil, map[string]string{"path": "a.txt"})
	existsCtx.SetParamNames("plugin")
	existsCtx.SetParamValues("cde")
	require.NoError(t, controller.FileExistsHandler(existsCtx))
	require.Equal(t, http.StatusOK, existsRec.Code)

	var existsResp struct {
		Exists bool `json:"exists"`
	}
	require.NoError(t, json.Unmarshal(existsRec.Body.Bytes(), &existsResp))
	require.True(t, existsResp.Exists)

	deleteCtx, deleteRec := setupEchoContext(http.MethodDelete, "/api/system/cde/file", nil, map[string]string{"path": "a.txt"})
	deleteCtx.SetParamNames("plugin")
	deleteCtx.SetParamValues("cde")
	require.NoError(t, controller.DeleteFileHandler(deleteCtx))
	require.Equal(t, http.StatusOK, deleteRec.Code)
}

func TestContentController_ErrorMapping(t *testing.T) {
	controller := NewSystemContentController(newTestFactory())

	t.Run("missing file is 404", func(t *testing.T) {
		ctx, _ := setupEchoContext(http.MethodGet, "/api/system/cde/file", nil, map[string]string{"path": "missing.txt"})
		ctx.SetParamNames("plugin")
		ctx.SetParamValues("cde")

		err := controller.GetFileHandler(ctx)
		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("path traversal is 403", func(t *testing.T) {
		ctx, _ := setupEchoContext(http.MethodGet, "/api/system/cde/file", nil, map[string]string{"path": "../../etc/passwd"})
		ctx.SetParamNames("plugin")
		ctx.SetParamValues("cde")

		err := controller.GetFileHandler(ctx)
		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("missing path param is 400", func(t *testing.T) {
		ctx, _ := setupEchoContext(http.MethodGet, "/api/system/cde/file", nil, nil)
		ctx.SetParamNames("plugin")
		ctx.SetParamValues("cde")

		err := controller.GetFileHandler(ctx)
		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestUserContentController_ReadOnlyWithoutRegistration(t *testing.T) {
	controller := NewUserContentController(newTestFactory())

	ctx, _ := setupEchoContext(http.MethodPut, "/api/user/file", []byte("x"), map[string]string{"path": "a.txt"})

	err := controller.SaveFileHandler(ctx)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRepositoryContentController(t *testing.T) {
	f := newTestFactory()
	controller := NewRepositoryContentController(f)

	saveCtx, saveRec := setupEchoContext(http.MethodPut, "/api/repository/file", []byte("{}"), map[string]string{"path": "dashboards/main.cdfde"})
	require.NoError(t, controller.SaveFileHandler(saveCtx))
	require.Equal(t, http.StatusCreated, saveRec.Code)

	listCtx, listRec := setupEchoContext(http.MethodGet, "/api/repository/files", nil, map[string]string{"path": "dashboards"})
	require.NoError(t, controller.ListFilesHandler(listCtx))
	require.Equal(t, http.StatusOK, listRec.Code)

	var listResp struct {
		Files []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listResp))
	require.Equal(t, []string{"main.cdfde"}, listResp.Files)
}
