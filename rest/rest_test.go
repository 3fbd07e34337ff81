package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/dirtest"
	dirgrpc "github.com/gauravscripts/empdir/grpc"
	"github.com/gauravscripts/empdir/rest"
	"github.com/gauravscripts/empdir/server"
	"github.com/gauravscripts/empdir/store"
	"github.com/gauravscripts/empdir/types"
)

func newTestServer(t *testing.T, dir empdir.Directory, maxBody int64) *httptest.Server {
	t.Helper()
	router := rest.NewRouter(zerolog.Nop(), maxBody)
	rest.NewHandler(dir, zerolog.Nop()).RegisterRoutes(router)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func decodeError(t *testing.T, body string) rest.ErrorBody {
	t.Helper()
	var eb rest.ErrorBody
	require.NoError(t, json.Unmarshal([]byte(body), &eb))
	return eb
}

func TestREST_Compliance(t *testing.T) {
	dirtest.RunComplianceSuite(t, func(t *testing.T) empdir.Connection {
		ts := newTestServer(t, server.New(store.New(), zerolog.Nop()), 1<<20)
		return rest.NewClient(ts.URL, ts.Client())
	})
}

func TestREST_AddGetList(t *testing.T) {
	ts := newTestServer(t, server.New(store.New(), zerolog.Nop()), 1<<20)

	resp, body := do(t, http.MethodPost, ts.URL+"/employee",
		`{"id":77,"name":"Gaurav","salary":95000,"departments":[{"id":1,"name":"Engineering"}],"addressMap":{"city":"Bangalore"},"isActive":true,"foo":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var added map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &added))
	require.Equal(t, float64(1), added["id"])
	require.Equal(t, "Gaurav", added["name"])
	require.Contains(t, added, "joinDate")
	require.NotContains(t, added, "foo")

	resp, body = do(t, http.MethodGet, ts.URL+"/employee/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `"addressMap":{"city":"Bangalore"}`)

	resp, body = do(t, http.MethodGet, ts.URL+"/employees", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 1)
}

func TestREST_EmptyBodyObjectGetsDefaults(t *testing.T) {
	ts := newTestServer(t, server.New(store.New(), zerolog.Nop()), 1<<20)

	resp, body := do(t, http.MethodPost, ts.URL+"/employee", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var added map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &added))
	require.Equal(t, "", added["name"])
	require.Equal(t, float64(0), added["salary"])
	require.Equal(t, []any{}, added["departments"])
	require.Equal(t, map[string]any{}, added["addressMap"])
	require.Equal(t, false, added["isActive"])
}

func TestREST_EmptyListIsArray(t *testing.T) {
	ts := newTestServer(t, server.New(store.New(), zerolog.Nop()), 1<<20)
	resp, body := do(t, http.MethodGet, ts.URL+"/employees", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `[]`, body)
}

func TestREST_NonFiniteSalaryIsListed(t *testing.T) {
	srv := server.New(store.New(), zerolog.Nop())
	ts := newTestServer(t, srv, 1<<20)

	resp, _ := do(t, http.MethodPost, ts.URL+"/employee", `{"name":"Asha","salary":1200.5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, salary := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := srv.AddEmployee(context.Background(), types.Employee{Name: "odd", Salary: salary})
		require.NoError(t, err)
	}

	resp, body := do(t, http.MethodGet, ts.URL+"/employees", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 4)
	require.Equal(t, 1200.5, list[0]["salary"])
	require.Equal(t, "NaN", list[1]["salary"])
	require.Equal(t, "Infinity", list[2]["salary"])
	require.Equal(t, "-Infinity", list[3]["salary"])

	resp, body = do(t, http.MethodGet, ts.URL+"/employee/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	// The REST client reads them back as the same values.
	got, err := rest.NewClient(ts.URL, ts.Client()).ListEmployees(context.Background())
	require.NoError(t, err)
	require.True(t, math.IsNaN(got[1].Salary))
	require.True(t, math.IsInf(got[2].Salary, 1))
	require.True(t, math.IsInf(got[3].Salary, -1))
}

func TestREST_Errors(t *testing.T) {
	ts := newTestServer(t, server.New(store.New(), zerolog.Nop()), 64)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
		substr string
	}{
		{"unknown id", http.MethodGet, "/employee/999", "", http.StatusNotFound, rest.CodeNotFound, "999"},
		{"non numeric id", http.MethodGet, "/employee/abc", "", http.StatusBadRequest, rest.CodeBadRequest, `"id"`},
		{"id overflow", http.MethodGet, "/employee/99999999999", "", http.StatusBadRequest, rest.CodeBadRequest, `"id"`},
		{"malformed body", http.MethodPost, "/employee", `{"name":`, http.StatusBadRequest, rest.CodeBadRequest, "malformed"},
		{"wrong type", http.MethodPost, "/employee", `{"salary":"lots"}`, http.StatusBadRequest, rest.CodeBadRequest, "salary"},
		{"too large", http.MethodPost, "/employee", `{"name":"` + strings.Repeat("x", 100) + `"}`, http.StatusRequestEntityTooLarge, rest.CodeBodyTooLarge, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, tc.method, ts.URL+tc.path, tc.body)
			require.Equal(t, tc.status, resp.StatusCode, body)
			eb := decodeError(t, body)
			require.Equal(t, tc.code, eb.Code)
			require.Contains(t, eb.Message, tc.substr)
		})
	}
}

func TestREST_InternalErrorIsHidden(t *testing.T) {
	mock := &dirtest.MockDirectory{
		ListEmployeesFn: func(context.Context) ([]types.Employee, error) {
			return nil, errors.New("disk on fire")
		},
	}
	ts := newTestServer(t, mock, 1<<20)

	resp, body := do(t, http.MethodGet, ts.URL+"/employees", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	eb := decodeError(t, body)
	require.Equal(t, rest.CodeInternal, eb.Code)
	require.NotContains(t, eb.Message, "disk")
}

func TestREST_RequestIDAndHealth(t *testing.T) {
	ts := newTestServer(t, &dirtest.MockDirectory{}, 1<<20)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(rest.RequestIDHeader, "req-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "req-123", resp.Header.Get(rest.RequestIDHeader))

	resp, _ = do(t, http.MethodGet, ts.URL+"/healthz", "")
	require.NotEmpty(t, resp.Header.Get(rest.RequestIDHeader))
}

func TestClient_MapsErrors(t *testing.T) {
	ts := newTestServer(t, server.New(store.New(), zerolog.Nop()), 1<<20)
	client := rest.NewClient(ts.URL+"/", ts.Client())

	_, err := client.GetEmployee(context.Background(), 999)
	nf, ok := empdir.IsNotFound(err)
	require.True(t, ok, "expected NotFoundError, got %v", err)
	require.Equal(t, int32(999), nf.ID)
}

// The REST surface served through the binary transport: records added
// over REST are visible over gRPC and the other way round.
func TestREST_ProxyToGRPC(t *testing.T) {
	srv := server.New(store.New(), zerolog.Nop())

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	gs := grpc.NewServer()
	dirgrpc.NewGRPCServer(srv, srv).Register(gs)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.GracefulStop)

	grpcClient, err := dirgrpc.Dial(context.Background(), lis.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = grpcClient.Close() })

	ts := newTestServer(t, grpcClient, 1<<20)
	restClient := rest.NewClient(ts.URL, ts.Client())

	viaREST, err := restClient.AddEmployee(context.Background(), server.SampleEmployee())
	require.NoError(t, err)
	require.Equal(t, int32(1), viaREST.ID)

	viaGRPC, err := grpcClient.GetEmployee(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, viaGRPC.Equal(viaREST), "grpc %+v\nrest %+v", viaGRPC, viaREST)

	_, err = restClient.GetEmployee(context.Background(), 999)
	_, ok := empdir.IsNotFound(err)
	require.True(t, ok, "NotFound must survive both hops, got %v", err)
}
