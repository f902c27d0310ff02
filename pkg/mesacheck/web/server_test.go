package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/output"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Keep-alive connections of http.DefaultClient.
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

func workbook(t *testing.T, cells map[string]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

var guests = map[string]string{
	"A1": "Mesa A",
	"A2": "maria de souza",
	"A3": "joão",
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWith(t, Options{})
}

func newTestServerWith(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	opts.Logger = zaptest.NewLogger(t)
	session := mesacheck.NewSession(mesacheck.DefaultOptions(), opts.Logger)
	ts := httptest.NewServer(NewServer(session, opts))
	t.Cleanup(ts.Close)
	return ts
}

func upload(t *testing.T, ts *httptest.Server, name string, data []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/upload", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func toggle(t *testing.T, ts *httptest.Server, uploadID, coord string) *http.Response {
	t.Helper()

	body, err := json.Marshal(map[string]string{"upload_id": uploadID, "coord": coord})
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/api/toggle", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "if (!res.ok) {\n    // A rejected upload empties the server session.\n    clearRoster();",
		"a failed upload must drop the previous tables")

	missing, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestUploadToggleDownload(t *testing.T) {
	ts := newTestServer(t)

	resp := upload(t, ts, "convidados.xlsx", workbook(t, guests))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view output.RosterView
	decode(t, resp, &view)
	require.NotEmpty(t, view.UploadID)
	assert.Equal(t, "convidados.xlsx", view.FileName)
	assert.Equal(t, 1, view.HeaderRow)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Mesa A", view.Groups[0].Column.Key)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, "Maria de Souza", view.Groups[0].Items[0].Text)

	tr := toggle(t, ts, view.UploadID, "R2C1")
	require.Equal(t, http.StatusOK, tr.StatusCode)
	var toggled struct {
		Coord     string `json:"coord"`
		Confirmed bool   `json:"confirmed"`
		Count     int    `json:"count"`
	}
	decode(t, tr, &toggled)
	assert.Equal(t, "R2C1", toggled.Coord)
	assert.True(t, toggled.Confirmed)
	assert.Equal(t, 1, toggled.Count)

	rr, err := http.Get(ts.URL + "/api/roster")
	require.NoError(t, err)
	defer rr.Body.Close()
	var current output.RosterView
	decode(t, rr, &current)
	assert.Equal(t, 1, current.Confirmed)
	assert.True(t, current.Groups[0].Items[0].Confirmed)
	assert.False(t, current.Groups[0].Items[1].Confirmed)

	dl, err := http.Get(ts.URL + "/api/download")
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Equal(t, mesacheck.ContentType, dl.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="confirmacao_atualizada.xlsx"`, dl.Header.Get("Content-Disposition"))

	f, err := excelize.OpenReader(dl.Body)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "A3")
	require.NoError(t, err)
	assert.Equal(t, "João", v)
}

func TestUploadRejected(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		data   []byte
		status int
	}{
		{"no header", Options{}, workbook(t, map[string]string{"A1": "Nome", "A2": "ana"}), http.StatusUnprocessableEntity},
		{"legacy xls", Options{}, append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...), http.StatusUnprocessableEntity},
		{"not a workbook", Options{}, []byte("nome;mesa\n"), http.StatusUnprocessableEntity},
		{"too large", Options{MaxUploadBytes: 1024}, bytes.Repeat([]byte{'x'}, 4096), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServerWith(t, tt.opts)
			resp := upload(t, ts, "x.xlsx", tt.data)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]string
			decode(t, resp, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestUploadMissingFile(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/upload", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToggleErrors(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, toggle(t, ts, "", "R2C1").StatusCode, "nothing loaded")

	var first output.RosterView
	decode(t, upload(t, ts, "a.xlsx", workbook(t, guests)), &first)

	assert.Equal(t, http.StatusBadRequest, toggle(t, ts, first.UploadID, "B7").StatusCode)
	assert.Equal(t, http.StatusNotFound, toggle(t, ts, first.UploadID, "R9C9").StatusCode)

	// A second upload makes toggles against the first one stale.
	var second output.RosterView
	decode(t, upload(t, ts, "b.xlsx", workbook(t, guests)), &second)
	require.NotEqual(t, first.UploadID, second.UploadID)

	assert.Equal(t, http.StatusConflict, toggle(t, ts, first.UploadID, "R2C1").StatusCode)
	assert.Equal(t, http.StatusOK, toggle(t, ts, second.UploadID, "R2C1").StatusCode)

	bad, err := http.Post(ts.URL+"/api/toggle", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestUploadClearsConfirmations(t *testing.T) {
	ts := newTestServer(t)

	var first output.RosterView
	decode(t, upload(t, ts, "a.xlsx", workbook(t, guests)), &first)
	require.Equal(t, http.StatusOK, toggle(t, ts, first.UploadID, "R2C1").StatusCode)

	var second output.RosterView
	decode(t, upload(t, ts, "a.xlsx", workbook(t, guests)), &second)
	assert.Equal(t, 0, second.Confirmed)

	rr, err := http.Get(ts.URL + "/api/roster")
	require.NoError(t, err)
	defer rr.Body.Close()
	var current output.RosterView
	decode(t, rr, &current)
	assert.Equal(t, 0, current.Confirmed)
}

func TestNothingLoaded(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/roster", "/api/download"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	session := mesacheck.NewSession(mesacheck.DefaultOptions(), nil)
	srv := NewServer(session, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	http.DefaultClient.CloseIdleConnections()
}

func TestRosterMatchesUploadDuringReloads(t *testing.T) {
	files := map[string][]byte{
		"a.xlsx": workbook(t, map[string]string{"A1": "Mesa A", "A2": "ana"}),
		"b.xlsx": workbook(t, map[string]string{"A1": "Mesa A", "A2": "bia"}),
	}
	want := map[string]string{"a.xlsx": "Ana", "b.xlsx": "Bia"}

	session := mesacheck.NewSession(mesacheck.DefaultOptions(), nil)
	_, err := session.Load("a.xlsx", files["a.xlsx"])
	require.NoError(t, err)
	srv := NewServer(session, Options{})

	done := make(chan struct{})
	var wg sync.WaitGroup
	for _, name := range []string{"a.xlsx", "b.xlsx"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if _, err := session.Load(name, files[name]); err != nil {
					t.Error(err)
					return
				}
			}
		}(name)
	}

	for i := 0; i < 500; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/roster", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var view output.RosterView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		if got := view.Groups[0].Items[0].Text; got != want[view.FileName] {
			t.Errorf("roster of %s lists %q", view.FileName, got)
			break
		}
	}
	close(done)
	wg.Wait()
}
