// Package tests exercises the full server stack over the public http surface.
package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/finvault/bookkeeper/cmd/httpserver"
	"github.com/finvault/bookkeeper/internal/domain"
	"github.com/finvault/bookkeeper/internal/middleware"
	"github.com/finvault/bookkeeper/pkg/configpkg"
	"github.com/finvault/bookkeeper/pkg/randompkg"
	"github.com/finvault/bookkeeper/pkg/web"
)

var server *httpserver.Server

func TestMain(m *testing.M) {
	config := configpkg.Config{
		ServerAddress:        "0.0.0.0:8080",
		TokenSymmetricKey:    randompkg.String(32),
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
		Environment:          "test",
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)
	logger := middleware.CreateLogger(config)

	var err error

	server, err = httpserver.New(logger, config)
	if err != nil {
		log.Println("cannot create server:", err)
		os.Exit(1)
	}

	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// send marshals body, attaches the bearer token if given, and runs the request
// through the full middleware chain.
func send(t *testing.T, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.AuthTypeBearer+" "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, data any) web.Response {
	t.Helper()

	res := web.Response{Data: data}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	return res
}

type signedUpUser struct {
	User         domain.UserWithoutPassword
	Password     string
	AccessToken  string
	RefreshToken string
}

// signUpUser registers a fresh random user and returns its tokens.
func signUpUser(t *testing.T) signedUpUser {
	t.Helper()

	password := randompkg.String(10)

	body := gin.H{
		"username": randompkg.Owner(),
		"password": password,
		"fullname": randompkg.Owner(),
		"email":    randompkg.Email(),
	}

	recorder := send(t, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	data := &struct {
		User domain.UserWithoutPassword `json:"user"`
	}{}

	res := decode(t, recorder, data)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.Equal(t, body["username"], data.User.Username)

	return signedUpUser{
		User:         data.User,
		Password:     password,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}
}

// createAccount opens an account over the api and returns it.
func createAccount(t *testing.T, token, id, initialBalance string) domain.Account {
	t.Helper()

	body := gin.H{"id": id, "initial_balance": initialBalance}

	recorder := send(t, http.MethodPost, "/accounts", token, body)
	require.Equal(t, http.StatusCreated, recorder.Code)

	data := &struct {
		Account domain.Account `json:"account"`
	}{}
	decode(t, recorder, data)

	require.Equal(t, id, data.Account.ID)

	return data.Account
}
