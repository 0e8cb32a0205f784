package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"project-analysis/inout"
	"project-analysis/services/analysis_service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const statsCSV = "project_name,channel_name,bonus_invalid_text,bonus_text,order_time,finish_time\n" +
	"项目A,渠道1,-,有效,2024-03-01 10:00:00,2024-03-05 10:00:00\n"

func postStatistics(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	_, err := analysisService.LoadFromReader(strings.NewReader(statsCSV), "orders.csv", analysis_service.SourceUpload)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/statistics", RunStatistics)

	req := httptest.NewRequest(http.MethodPost, "/statistics", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 下单时间窗口筛不出订单时应返回成功的空结果，而不是错误
func TestRunStatisticsEmptyWindowIsSuccess(t *testing.T) {
	form := url.Values{}
	form.Set("order_start", "2030-01-01 00:00:00")
	w := postStatistics(t, form)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Code    int                 `json:"code"`
		Error   string              `json:"error"`
		Data    inout.StatisticsRep `json:"data"`
		Message string              `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Equal(t, 200, body.Code)
	require.Empty(t, body.Error)
	require.Empty(t, body.Data.Items)
	require.Zero(t, body.Data.OrderCount)
	require.Contains(t, body.Data.Message, "没有符合下单时间筛选条件的订单")
}

func TestRunStatisticsWithMatchingWindow(t *testing.T) {
	form := url.Values{}
	form.Set("order_start", "2024-03-01 00:00:00")
	form.Set("order_end", "2024-03-02 00:00:00")
	w := postStatistics(t, form)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Code int                 `json:"code"`
		Data inout.StatisticsRep `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Equal(t, 200, body.Code)
	require.Len(t, body.Data.Items, 1)
	require.Equal(t, 1, body.Data.OrderCount)
}
