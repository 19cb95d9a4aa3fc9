package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/config"
	mocks "github.com/vhpires/groupcast/internal/mocks/api/handlers/delivery"
	"github.com/vhpires/groupcast/internal/model"
	deliveryrepo "github.com/vhpires/groupcast/internal/repository/delivery"
)

func TestMain(m *testing.M) {
	zlog.Init()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var testStrategy = retry.Strategy{Attempts: 1, Delay: time.Millisecond, Backoff: 1}

func newHandler(t *testing.T) (*Handler, *mocks.MockdeliveryService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockdeliveryService(ctrl)

	cfg := &config.Config{Retry: testStrategy}
	return NewHandler(svc, cfg), svc
}

func testContext(t *testing.T, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id}}

	return c, w
}

func TestGetStatus(t *testing.T) {
	h, svc := newHandler(t)
	id := uuid.New()

	svc.EXPECT().
		GetStatusByID(gomock.Any(), testStrategy, id).
		Return(model.DeliveryStatusSent, nil)

	c, w := testContext(t, id.String())
	h.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Data    string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, string(model.DeliveryStatusSent), resp.Data)
}

func TestGetStatus_InvalidID(t *testing.T) {
	h, _ := newHandler(t)

	c, w := testContext(t, "not-a-uuid")
	h.GetStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStatus_NotFound(t *testing.T) {
	h, svc := newHandler(t)
	id := uuid.New()

	svc.EXPECT().
		GetStatusByID(gomock.Any(), testStrategy, id).
		Return(model.DeliveryStatus(""), deliveryrepo.ErrDeliveryNotFound)

	c, w := testContext(t, id.String())
	h.GetStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStatus_InternalError(t *testing.T) {
	h, svc := newHandler(t)
	id := uuid.New()

	svc.EXPECT().
		GetStatusByID(gomock.Any(), testStrategy, id).
		Return(model.DeliveryStatus(""), assert.AnError)

	c, w := testContext(t, id.String())
	h.GetStatus(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
