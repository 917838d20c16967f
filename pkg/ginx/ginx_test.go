package ginx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/vsched/pkg/apierror"
	"github.com/stretchr/testify/assert"
)

type echoArgs struct {
	Name string `json:"name" uri:"name" form:"name"`
}

func (a *echoArgs) IsValid() error {
	if a.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

type echoResp struct {
	Name string `json:"name"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/echo", AdaptArgs(func(ctx *gin.Context, args *echoArgs) (*echoResp, error) {
		return &echoResp{Name: args.Name}, nil
	}))
	r.POST("/echo/:name", AdaptArgs(func(ctx *gin.Context, args *echoArgs) (*echoResp, error) {
		return &echoResp{Name: args.Name}, nil
	}))
	r.GET("/fail", Adapt(func(ctx *gin.Context) (*echoResp, error) {
		return nil, apierror.ErrNoValidHost
	}))
	return r
}

func TestAdaptArgs_JSONBody(t *testing.T) {
	t.Parallel()

	r := setupRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"host-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"host-1"}`, w.Body.String())
}

func TestAdaptArgs_URIParam(t *testing.T) {
	t.Parallel()

	r := setupRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo/host-2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"host-2"}`, w.Body.String())
}

func TestAdaptArgs_Validation(t *testing.T) {
	t.Parallel()

	r := setupRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
}

func TestAdapt_APIErrorStatus(t *testing.T) {
	t.Parallel()

	r := setupRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	r.ServeHTTP(w, req)

	// *apierror.Error 的 HTTPStatus 决定响应状态码
	assert.Equal(t, apierror.ErrNoValidHost.HTTPStatus, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NoValidHost"`)
}
