package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/hostscan/pkg/sink"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

type update struct {
	Range string
	Value string
}

func newGoogleOpener(t *testing.T, files string) (*GoogleOpener, *[]update) {
	t.Helper()

	updates := make([]update, 0)

	mux := http.NewServeMux()

	mux.HandleFunc("/drive/v3/files", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if !strings.Contains(q, "name = 'shodan output'") || !strings.Contains(q, spreadsheetMimeType) {
			t.Errorf("unexpected drive query %q", q)
		}

		io.WriteString(w, files)
	})

	mux.HandleFunc("/v4/spreadsheets/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/")

		switch {
		case r.Method == http.MethodGet && path == "sheet-id":
			io.WriteString(w, `{"spreadsheetId":"sheet-id","sheets":[{"properties":{"sheetId":0,"title":"Sheet1"}},{"properties":{"sheetId":7,"title":"Archive"}}]}`)

		case r.Method == http.MethodPut && strings.HasPrefix(path, "sheet-id/values/"):
			if e, g := "RAW", r.URL.Query().Get("valueInputOption"); e != g {
				t.Errorf("valueInputOption: expected %q, got %q", e, g)
			}

			var body gsheets.ValueRange
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}

			if len(body.Values) != 1 || len(body.Values[0]) != 1 {
				t.Errorf("expected a single cell, got %v", body.Values)
				return
			}

			updates = append(updates, update{
				Range: strings.TrimPrefix(path, "sheet-id/values/"),
				Value: body.Values[0][0].(string),
			})

			io.WriteString(w, `{"spreadsheetId":"sheet-id","updatedCells":1}`)

		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithEndpoint(server.URL+"/drive/v3/"), option.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	sheetsService, err := gsheets.NewService(ctx, option.WithEndpoint(server.URL+"/"), option.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return NewGoogleOpener(driveService, sheetsService), &updates
}

func TestGoogleOpener(t *testing.T) {
	opener, updates := newGoogleOpener(t, `{"files":[{"id":"sheet-id","name":"shodan output"}]}`)

	s := NewSink(opener, DefaultTitle)

	if err := s.Write(context.Background(), sink.Batch{Lines: []string{"US says X", "DE says Y"}}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expected := []update{
		{Range: "'Sheet1'!A1", Value: "US says X"},
		{Range: "'Sheet1'!A2", Value: "DE says Y"},
	}

	if diff := cmp.Diff(expected, *updates); diff != "" {
		t.Errorf("unexpected updates (-want +got):\n%s", diff)
	}
}

func TestGoogleOpenerNotFound(t *testing.T) {
	opener, updates := newGoogleOpener(t, `{"files":[]}`)

	_, err := opener.Open(context.Background(), DefaultTitle)
	if !errors.Is(err, ErrSpreadsheetNotFound) {
		t.Errorf("expected ErrSpreadsheetNotFound, got %v", err)
	}

	if e, g := 0, len(*updates); e != g {
		t.Errorf("len(updates): expected %d, got %d", e, g)
	}
}
