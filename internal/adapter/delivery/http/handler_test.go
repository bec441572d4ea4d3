package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vadimbarashkov/shortlink-service/internal/entity"

	httpMock "github.com/vadimbarashkov/shortlink-service/mocks/http"
)

const testBaseURL = "https://sho.rt"

type HandlersTestSuite struct {
	suite.Suite
	logger       *httplog.Logger
	useCaseMock  *httpMock.MockShortlinkUseCase
	checkerMock  *httpMock.MockRedirectChecker
	server       *httptest.Server
	e            *httpexpect.Expect
	createdAt    time.Time
	redirects    []entity.Redirect
	redirectBody map[string]any
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
	suite.createdAt = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	suite.redirects = []entity.Redirect{
		{From: 0, To: 12, URL: "https://example.com/morning"},
		{From: 12, To: 24, URL: "https://example.com/evening"},
	}
	suite.redirectBody = map[string]any{
		"redirects": []map[string]any{
			{"from": 0, "to": 12, "url": "https://example.com/morning"},
			{"from": 12, "to": 24, "url": "https://example.com/evening"},
		},
	}
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.useCaseMock = httpMock.NewMockShortlinkUseCase(suite.T())
	suite.checkerMock = httpMock.NewMockRedirectChecker(suite.T())

	metrics, err := NewMetrics(prometheus.NewRegistry())
	suite.Require().NoError(err)

	router := NewRouter(suite.logger, metrics, testBaseURL, suite.useCaseMock, suite.checkerMock)
	suite.server = httptest.NewServer(router)
	suite.T().Cleanup(func() {
		suite.server.Close()
	})

	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.useCaseMock.AssertExpectations(suite.T())
	suite.checkerMock.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) shortlink(key string, keyType entity.KeyType) *entity.Shortlink {
	return &entity.Shortlink{
		ID:        "670b9d1e2f1c4a5e8d3b7a61",
		Key:       key,
		KeyType:   keyType,
		Redirects: suite.redirects,
		Visits:    7,
		CreatedAt: suite.createdAt,
		UpdatedAt: suite.createdAt,
	}
}

func (suite *HandlersTestSuite) TestPing() {
	const path = "/api/v1/ping"

	suite.Run("success", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			Text().IsEqual("pong")
	})
}

func (suite *HandlersTestSuite) TestGenerate() {
	const path = "/api/v1/shortlinks"

	suite.Run("empty request body", func() {
		resp := suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("message", "empty request body")
	})

	suite.Run("invalid request body", func() {
		resp := suite.e.POST(path).
			WithJSON("invalid body").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("message", "invalid request body")
	})

	suite.Run("missing redirects", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]any{"key_type": "standard"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "redirects").
			ContainsKey("message")
	})

	suite.Run("window ends before it starts", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]any{
				"redirects": []map[string]any{
					{"from": 10, "to": 5, "url": "https://example.com"},
				},
			}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "redirects[0].to").
			HasValue("message", "must be greater than from")
	})

	suite.Run("invalid url", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]any{
				"redirects": []map[string]any{
					{"from": 0, "to": 24, "url": "not a url"},
				},
			}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "redirects[0].url").
			HasValue("message", "invalid url")
	})

	suite.Run("unsupported key type", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]any{
				"key_type": "custom",
				"redirects": []map[string]any{
					{"from": 0, "to": 24, "url": "https://example.com"},
				},
			}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "key_type")
	})

	suite.Run("too many redirects", func() {
		redirects := make([]map[string]any, entity.MaxRedirects+1)
		for i := range redirects {
			redirects[i] = map[string]any{"from": 0, "to": 1, "url": "https://example.com"}
		}

		resp := suite.e.POST(path).
			WithJSON(map[string]any{"redirects": redirects}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "redirects").
			HasValue("message", "value out of range")
	})

	suite.Run("server error", func() {
		suite.useCaseMock.
			On("Generate", mock.Anything, entity.KeyType(""), suite.redirects).
			Once().
			Return(nil, errors.New("unknown error"))

		resp := suite.e.POST(path).
			WithJSON(suite.redirectBody).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.ContainsKey("message")
	})

	suite.Run("standard key", func() {
		suite.useCaseMock.
			On("Generate", mock.Anything, entity.KeyType(""), suite.redirects).
			Once().
			Return(suite.shortlink("bOV9", entity.KeyTypeStandard), nil)

		resp := suite.e.POST(path).
			WithJSON(suite.redirectBody).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.HasValue("key", "bOV9")
		resp.HasValue("key_type", "standard")
		resp.HasValue("short_url", testBaseURL+"/bOV9")
		resp.Value("redirects").Array().Length().IsEqual(2)
		resp.NotContainsKey("stats")
		resp.ContainsKey("created_at")
		resp.ContainsKey("updated_at")
	})

	suite.Run("uuid key", func() {
		const key = "9b2f4c1e-7a3d-4e8b-a6f0-2c5d1e9f8a7b"

		suite.useCaseMock.
			On("Generate", mock.Anything, entity.KeyTypeUUID, suite.redirects).
			Once().
			Return(suite.shortlink(key, entity.KeyTypeUUID), nil)

		body := map[string]any{
			"key_type":  "uuid",
			"redirects": suite.redirectBody["redirects"],
		}

		resp := suite.e.POST(path).
			WithJSON(body).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.HasValue("key_type", "uuid")
		resp.HasValue("short_url", testBaseURL+"/u/"+key)
	})
}

func (suite *HandlersTestSuite) TestList() {
	const path = "/api/v1/shortlinks"

	suite.Run("server error", func() {
		suite.useCaseMock.
			On("List", mock.Anything).
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().
			HasValue("status", "error")
	})

	suite.Run("empty", func() {
		suite.useCaseMock.
			On("List", mock.Anything).
			Once().
			Return(nil, nil)

		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			JSON().Array().IsEmpty()
	})

	suite.Run("success", func() {
		suite.useCaseMock.
			On("List", mock.Anything).
			Once().
			Return([]*entity.Shortlink{
				suite.shortlink("1", entity.KeyTypeStandard),
				suite.shortlink("2", entity.KeyTypeStandard),
			}, nil)

		resp := suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			JSON().Array()

		resp.Length().IsEqual(2)
		resp.Value(0).Object().HasValue("key", "1")
		resp.Value(1).Object().HasValue("key", "2")
	})
}

func (suite *HandlersTestSuite) TestStats() {
	path := "/api/v1/shortlinks/%s/stats"

	suite.Run("shortlink not found", func() {
		suite.useCaseMock.
			On("Stats", mock.Anything, "bOV9").
			Once().
			Return(nil, entity.ErrShortlinkNotFound)

		resp := suite.e.GET(fmt.Sprintf(path, "bOV9")).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("message", "shortlink not found")
	})

	suite.Run("server error", func() {
		suite.useCaseMock.
			On("Stats", mock.Anything, "bOV9").
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(fmt.Sprintf(path, "bOV9")).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().
			HasValue("status", "error")
	})

	suite.Run("success", func() {
		suite.useCaseMock.
			On("Stats", mock.Anything, "bOV9").
			Once().
			Return(suite.shortlink("bOV9", entity.KeyTypeStandard), nil)

		resp := suite.e.GET(fmt.Sprintf(path, "bOV9")).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("key", "bOV9")
		resp.Value("stats").Object().
			HasValue("visits", 7)
	})
}

func (suite *HandlersTestSuite) TestDeactivate() {
	const path = "/api/v1/shortlinks/%s"

	suite.Run("shortlink not found", func() {
		suite.useCaseMock.
			On("Deactivate", mock.Anything, "bOV9").
			Once().
			Return(entity.ErrShortlinkNotFound)

		suite.e.DELETE(fmt.Sprintf(path, "bOV9")).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("status", "error")
	})

	suite.Run("server error", func() {
		suite.useCaseMock.
			On("Deactivate", mock.Anything, "bOV9").
			Once().
			Return(errors.New("unknown error"))

		suite.e.DELETE(fmt.Sprintf(path, "bOV9")).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().
			HasValue("status", "error")
	})

	suite.Run("success", func() {
		suite.useCaseMock.
			On("Deactivate", mock.Anything, "bOV9").
			Once().
			Return(nil)

		suite.e.DELETE(fmt.Sprintf(path, "bOV9")).
			Expect().
			Status(http.StatusNoContent)
	})
}

func (suite *HandlersTestSuite) TestRedirect() {
	const uuidKey = "9b2f4c1e-7a3d-4e8b-a6f0-2c5d1e9f8a7b"

	suite.Run("shortlink not found", func() {
		suite.useCaseMock.
			On("Resolve", mock.Anything, "bOV9", entity.KeyTypeStandard, mock.AnythingOfType("time.Time")).
			Once().
			Return("", entity.ErrShortlinkNotFound)

		suite.e.GET("/bOV9").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("message", "shortlink not found")
	})

	suite.Run("server error", func() {
		suite.useCaseMock.
			On("Resolve", mock.Anything, "bOV9", entity.KeyTypeStandard, mock.AnythingOfType("time.Time")).
			Once().
			Return("", errors.New("unknown error"))

		suite.e.GET("/bOV9").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("standard key", func() {
		suite.useCaseMock.
			On("Resolve", mock.Anything, "bOV9", entity.KeyTypeStandard, mock.AnythingOfType("time.Time")).
			Once().
			Return("https://example.com/morning", nil)

		suite.e.GET("/bOV9").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com/morning")
	})

	suite.Run("uuid key", func() {
		suite.useCaseMock.
			On("Resolve", mock.Anything, uuidKey, entity.KeyTypeUUID, mock.AnythingOfType("time.Time")).
			Once().
			Return("https://example.com/evening", nil)

		suite.e.GET("/u/" + uuidKey).
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com/evening")
	})
}

func (suite *HandlersTestSuite) TestCheckRedirects() {
	const path = "/cron/checkRedirects"

	suite.Run("server error", func() {
		suite.checkerMock.
			On("Check", mock.Anything).
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().
			HasValue("status", "error")
	})

	suite.Run("success", func() {
		suite.checkerMock.
			On("Check", mock.Anything).
			Once().
			Return(&entity.CheckReport{Checked: 5, Deactivated: 2, Unreachable: 1}, nil)

		resp := suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("checked", 5)
		resp.HasValue("deactivated", 2)
		resp.HasValue("unreachable", 1)

		body := suite.e.GET("/metrics").
			Expect().
			Status(http.StatusOK).
			Body()

		body.Contains("redirect_checks_total 1")
		body.Contains("redirect_check_deactivated_total 2")
		body.Contains("redirect_check_unreachable_total 1")
	})
}

func (suite *HandlersTestSuite) TestMetrics() {
	suite.Run("requests are counted by route", func() {
		suite.useCaseMock.
			On("Stats", mock.Anything, "bOV9").
			Once().
			Return(nil, entity.ErrShortlinkNotFound)

		suite.e.GET("/api/v1/ping").Expect().Status(http.StatusOK)
		suite.e.GET("/api/v1/shortlinks/bOV9/stats").Expect().Status(http.StatusNotFound)

		body := suite.e.GET("/metrics").
			Expect().
			Status(http.StatusOK).
			Body()

		body.Contains(`http_requests_total{method="GET",route="/api/v1/ping",status="200"} 1`)
		body.Contains(`http_requests_total{method="GET",route="/api/v1/shortlinks/{key}/stats",status="404"} 1`)
	})
}

func TestShortlinkHandler(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
