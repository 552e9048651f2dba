package webapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/plugworks/repofs/pkg/repo"
	"github.com/plugworks/repofs/pkg/repo/factory"
)

// accessProvider resolves the request to the access object its operations run
// against. Each namespace gets its own resolver; the handlers are shared.
type accessProvider func(ctx echo.Context) (repo.RWAccess, error)

// ContentController exposes one namespace's content over HTTP. The file path
// operated on is passed in the "path" query parameter.
type ContentController struct {
	access accessProvider
}

// NewSystemContentController serves the plugin system namespace. The plugin
// id comes from the :plugin route parameter.
func NewSystemContentController(f *factory.ContentAccessFactory) *ContentController {
	return &ContentController{
		access: func(ctx echo.Context) (repo.RWAccess, error) {
			return f.OtherPluginSystemWriter(ctx.Param("plugin"), "")
		},
	}
}

// NewRepositoryContentController serves the plugin repository namespace.
func NewRepositoryContentController(f *factory.ContentAccessFactory) *ContentController {
	return &ContentController{
		access: func(_ echo.Context) (repo.RWAccess, error) {
			return f.PluginRepositoryWriter("")
		},
	}
}

// NewUserContentController serves the user content namespace.
func NewUserContentController(f *factory.ContentAccessFactory) *ContentController {
	return &ContentController{
		access: func(_ echo.Context) (repo.RWAccess, error) {
			return f.UserContentAccess(""), nil
		},
	}
}

func (c *ContentController) GetFileHandler(ctx echo.Context) error {
	access, filePath, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	data, err := access.ReadFile(filePath)
	if err != nil {
		return asHTTPError(err)
	}

	return ctx.Blob(http.StatusOK, echo.MIMEOctetStream, data)
}

func (c *ContentController) FileExistsHandler(ctx echo.Context) error {
	access, filePath, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"path":   filePath,
		"exists": access.FileExists(filePath),
	})
}

func (c *ContentController) ListFilesHandler(ctx echo.Context) error {
	access, dirPath, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	files, err := access.ListFiles(dirPath)
	if err != nil {
		return asHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"path":  dirPath,
		"files": files,
	})
}

func (c *ContentController) SaveFileHandler(ctx echo.Context) error {
	access, filePath, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.Wrap(err, "reading request body").Error())
	}

	if err := access.SaveFile(filePath, data); err != nil {
		return asHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, map[string]interface{}{
		"path": filePath,
		"size": len(data),
	})
}

func (c *ContentController) DeleteFileHandler(ctx echo.Context) error {
	access, filePath, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	if err := access.DeleteFile(filePath); err != nil {
		return asHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"path": filePath,
	})
}

func (c *ContentController) resolve(ctx echo.Context) (repo.RWAccess, string, error) {
	filePath := ctx.QueryParam("path")
	if filePath == "" {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "missing required query parameter 'path'")
	}

	access, err := c.access(ctx)
	if err != nil {
		return nil, "", asHTTPError(errors.Wrap(err, "resolving content access"))
	}

	return access, filePath, nil
}

// asHTTPError maps the access error kinds onto HTTP statuses: absent content
// is 404, traversal and read-only violations are 403, the rest is 500.
func asHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repo.ErrAccessDenied), errors.Is(err, repo.ErrReadOnly):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
