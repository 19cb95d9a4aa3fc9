package schedule

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/config"
	mocks "github.com/vhpires/groupcast/internal/mocks/api/handlers/schedule"
	"github.com/vhpires/groupcast/internal/model"
	deliveryrepo "github.com/vhpires/groupcast/internal/repository/delivery"
	schedulerepo "github.com/vhpires/groupcast/internal/repository/schedule"
	schedulesvc "github.com/vhpires/groupcast/internal/service/schedule"
)

func TestMain(m *testing.M) {
	zlog.Init()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var testStrategy = retry.Strategy{Attempts: 1, Delay: time.Millisecond, Backoff: 1}

type handlerMocks struct {
	schedules  *mocks.MockscheduleService
	deliveries *mocks.MockdeliveryService
}

func newHandler(t *testing.T) (*Handler, handlerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := handlerMocks{
		schedules:  mocks.NewMockscheduleService(ctrl),
		deliveries: mocks.NewMockdeliveryService(ctrl),
	}

	cfg := &config.Config{Retry: testStrategy}
	return NewHandler(m.schedules, m.deliveries, validator.New(), cfg), m
}

func testContext(t *testing.T, method, body string, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reqBody *bytes.Buffer
	if body != "" {
		reqBody = bytes.NewBufferString(body)
	} else {
		reqBody = &bytes.Buffer{}
	}

	c.Request = httptest.NewRequest(method, "/", reqBody)
	c.Params = gin.Params{{Key: "id", Value: id}}

	return c, w
}

func TestActivate(t *testing.T) {
	h, m := newHandler(t)
	scheduleID := uuid.New()

	created := []model.Delivery{
		{ID: uuid.New(), ScheduleID: scheduleID, GroupID: "g-1", Status: model.DeliveryStatusPending},
		{ID: uuid.New(), ScheduleID: scheduleID, GroupID: "g-2", Status: model.DeliveryStatusPending},
	}

	m.schedules.EXPECT().
		Activate(gomock.Any(), testStrategy, scheduleID, []string{"g-1", "g-2"}).
		Return(created, nil)

	c, w := testContext(t, http.MethodPost, `{"group_ids":["g-1","g-2"]}`, scheduleID.String())
	h.Activate(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    []model.Delivery `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 2)
}

func TestActivate_InvalidID(t *testing.T) {
	h, _ := newHandler(t)

	c, w := testContext(t, http.MethodPost, `{"group_ids":["g-1"]}`, "not-a-uuid")
	h.Activate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivate_InvalidBody(t *testing.T) {
	h, _ := newHandler(t)

	c, w := testContext(t, http.MethodPost, `{not json`, uuid.NewString())
	h.Activate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivate_EmptyGroupIDs(t *testing.T) {
	h, _ := newHandler(t)

	c, w := testContext(t, http.MethodPost, `{"group_ids":[]}`, uuid.NewString())
	h.Activate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivate_ScheduleNotFound(t *testing.T) {
	h, m := newHandler(t)
	scheduleID := uuid.New()

	m.schedules.EXPECT().
		Activate(gomock.Any(), testStrategy, scheduleID, []string{"g-1"}).
		Return(nil, schedulerepo.ErrScheduleNotFound)

	c, w := testContext(t, http.MethodPost, `{"group_ids":["g-1"]}`, scheduleID.String())
	h.Activate(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActivate_NoTargetGroups(t *testing.T) {
	h, m := newHandler(t)
	scheduleID := uuid.New()

	m.schedules.EXPECT().
		Activate(gomock.Any(), testStrategy, scheduleID, []string{"g-1"}).
		Return(nil, schedulesvc.ErrNoTargetGroups)

	c, w := testContext(t, http.MethodPost, `{"group_ids":["g-1"]}`, scheduleID.String())
	h.Activate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivate_InternalError(t *testing.T) {
	h, m := newHandler(t)
	scheduleID := uuid.New()

	m.schedules.EXPECT().
		Activate(gomock.Any(), testStrategy, scheduleID, []string{"g-1"}).
		Return(nil, assert.AnError)

	c, w := testContext(t, http.MethodPost, `{"group_ids":["g-1"]}`, scheduleID.String())
	h.Activate(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeactivate(t *testing.T) {
	h, m := newHandler(t)
	scheduleID := uuid.New()

	m.schedules.EXPECT().
		Deactivate(gomock.Any(), testStrategy, scheduleID).
		Return(nil)

	c, w := testContext(t, http.MethodPost, "", scheduleID.String())
	h.Deactivate(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeactivate_NotFound(t *testing.T) {
	h, m := newHandler(t)
	scheduleID := uuid.New()

	m.schedules.EXPECT().
		Deactivate(gomock.Any(), testStrategy, scheduleID).
		Return(schedulerepo.ErrScheduleNotFound)

	c, w := testContext(t, http.MethodPost, "", scheduleID.String())
	h.Deactivate(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListDeliveries(t *testing.T) {
	h, m := newHandler(t)
	scheduleID := uuid.New()

	m.deliveries.EXPECT().
		ListBySchedule(gomock.Any(), scheduleID).
		Return([]model.Delivery{{ID: uuid.New(), ScheduleID: scheduleID, Status: model.DeliveryStatusSent}}, nil)

	c, w := testContext(t, http.MethodGet, "", scheduleID.String())
	h.ListDeliveries(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListDeliveries_NoneFound(t *testing.T) {
	h, m := newHandler(t)
	scheduleID := uuid.New()

	m.deliveries.EXPECT().
		ListBySchedule(gomock.Any(), scheduleID).
		Return(nil, deliveryrepo.ErrNoDeliveriesFound)

	c, w := testContext(t, http.MethodGet, "", scheduleID.String())
	h.ListDeliveries(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
