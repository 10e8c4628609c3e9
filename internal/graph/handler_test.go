package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/soundgrid/sequencer-backend/internal/data/repos"
	"github.com/soundgrid/sequencer-backend/internal/data/repos/testutil"
	"github.com/soundgrid/sequencer-backend/internal/services"
)

func TestSetVariable(t *testing.T) {
	vars := map[string]interface{}{
		"input": map[string]interface{}{"file": nil},
		"batch": []interface{}{
			map[string]interface{}{"file": nil},
		},
	}

	setVariable(vars, "variables.input.file", "upload-a")
	setVariable(vars, "variables.batch.0.file", "upload-b")

	input := vars["input"].(map[string]interface{})
	if input["file"] != "upload-a" {
		t.Fatalf("expected nested map set, got %v", input["file"])
	}
	item := vars["batch"].([]interface{})[0].(map[string]interface{})
	if item["file"] != "upload-b" {
		t.Fatalf("expected list element set, got %v", item["file"])
	}

	// Bad paths must be ignored, not panic.
	setVariable(vars, "input.file", "x")
	setVariable(vars, "variables.missing.deep.file", "x")
	setVariable(vars, "variables.batch.7.file", "x")
	setVariable(vars, "variables.batch.notanumber.file", "x")
}

// newTestRouter wires the full stack (schema, resolvers, services, repos)
// against a transaction-scoped database and a throwaway file store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	sampleRepo := repos.NewSampleRepo(tx, log)
	instrumentRepo := repos.NewInstrumentRepo(tx, log)
	sessionRepo := repos.NewSessionRepo(tx, log)

	staticDir := t.TempDir()
	store := services.NewLocalFileStore(filepath.Join(staticDir, "samples"), staticDir, log)

	resolver := NewResolver(
		log,
		services.NewSampleService(tx, log, store, sampleRepo),
		services.NewInstrumentService(tx, log, instrumentRepo, sampleRepo),
		services.NewSessionService(tx, log, sessionRepo, instrumentRepo, sampleRepo),
	)
	schema, err := NewSchema(resolver)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/graphql", NewHandler(log, schema).ServeGraphQL)
	return router
}

func postGraphQL(t *testing.T, router *gin.Engine, query string, variables map[string]interface{}) map[string]interface{} {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errs, ok := result["errors"]; ok && errs != nil {
		t.Fatalf("graphql errors: %v", errs)
	}
	data, _ := result["data"].(map[string]interface{})
	if data == nil {
		t.Fatalf("missing data in response: %s", w.Body.String())
	}
	return data
}

func TestGraphQLCreateSampleMultipart(t *testing.T) {
	router := newTestRouter(t)

	operations, _ := json.Marshal(map[string]interface{}{
		"query": `mutation($input: SampleCreateInput!) {
			createSample(input: $input) {
				code success messageTemplate
				sample { id url label type group }
			}
		}`,
		"variables": map[string]interface{}{
			"input": map[string]interface{}{"file": nil, "group": "drums"},
		},
	})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("operations", string(operations))
	_ = writer.WriteField("map", `{"0": ["variables.input.file"]}`)

	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="0"; filename="kick.wav"`},
		"Content-Type":        {"audio/wave"},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("audio-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/graphql", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var result struct {
		Data struct {
			CreateSample struct {
				Code            string `json:"code"`
				Success         bool   `json:"success"`
				MessageTemplate string `json:"messageTemplate"`
				Sample          *struct {
					ID    string  `json:"id"`
					URL   string  `json:"url"`
					Label string  `json:"label"`
					Type  string  `json:"type"`
					Group *string `json:"group"`
				} `json:"sample"`
			} `json:"createSample"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	resp := result.Data.CreateSample
	if resp.Code != "200" || !resp.Success {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}
	if resp.MessageTemplate != "mutation.createSample.success" {
		t.Fatalf("unexpected template %q", resp.MessageTemplate)
	}
	if resp.Sample == nil {
		t.Fatal("expected sample in response")
	}
	if resp.Sample.URL != "/samples/"+resp.Sample.ID+".wav" {
		t.Fatalf("unexpected url %q", resp.Sample.URL)
	}
	if resp.Sample.Label != "kick.wav" || resp.Sample.Type != "audio/wave" {
		t.Fatalf("unexpected sample: %+v", resp.Sample)
	}
	if resp.Sample.Group == nil || *resp.Sample.Group != "drums" {
		t.Fatalf("expected group drums, got %v", resp.Sample.Group)
	}
}

func TestGraphQLCreateSampleValidationRejectsMutation(t *testing.T) {
	router := newTestRouter(t)

	operations, _ := json.Marshal(map[string]interface{}{
		"query": `mutation($input: SampleCreateInput!) {
			createSample(input: $input) { success sample { id } }
		}`,
		"variables": map[string]interface{}{
			"input": map[string]interface{}{"file": nil},
		},
	})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("operations", string(operations))
	_ = writer.WriteField("map", `{"0": ["variables.input.file"]}`)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="0"; filename="movie.mp4"`},
		"Content-Type":        {"video/mp4"},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("not-audio")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/graphql", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var result struct {
		Data   map[string]interface{}   `json:"data"`
		Errors []map[string]interface{} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// An invalid upload rejects the whole mutation instead of producing a
	// success:false envelope.
	if len(result.Errors) == 0 {
		t.Fatalf("expected graphql errors, got %s", w.Body.String())
	}
	msg, _ := result.Errors[0]["message"].(string)
	if !strings.Contains(msg, "Audio MIME type required") {
		t.Fatalf("unexpected error message %q", msg)
	}
	if result.Data["createSample"] != nil {
		t.Fatalf("expected null createSample, got %v", result.Data["createSample"])
	}
}

func TestGraphQLCreateSessionAcceptsOpaqueCreatorID(t *testing.T) {
	router := newTestRouter(t)

	// Creator identifiers are opaque strings, not UUIDs.
	data := postGraphQL(t, router, `mutation($input: SessionCreateInput!) {
		createSession(input: $input) {
			success messageTemplate
			session { creatorID tempo masterGain tracks { id } trackOrder instruments { id } samples { id } }
		}
	}`, map[string]interface{}{
		"input": map[string]interface{}{"creatorID": "foo"},
	})

	created := data["createSession"].(map[string]interface{})
	if created["success"] != true {
		t.Fatalf("createSession failed: %v", created)
	}
	if created["messageTemplate"] != "mutation.createSession.success" {
		t.Fatalf("unexpected template %v", created["messageTemplate"])
	}
	session := created["session"].(map[string]interface{})
	if session["creatorID"] != "foo" {
		t.Fatalf("expected creator foo, got %v", session["creatorID"])
	}
	if session["tempo"].(float64) != 120 || session["masterGain"].(float64) != 1 {
		t.Fatalf("unexpected transport defaults: %v", session)
	}
	for _, key := range []string{"tracks", "trackOrder", "instruments", "samples"} {
		if items, _ := session[key].([]interface{}); len(items) != 0 {
			t.Fatalf("expected empty %s, got %v", key, session[key])
		}
	}
}

func TestGraphQLSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)
	creatorID := uuid.NewString()

	data := postGraphQL(t, router, `mutation($input: SessionCreateInput!) {
		createSession(input: $input) {
			success
			session { id creatorID tempo masterGain tracks { id } trackOrder instruments { id } samples { id } }
		}
	}`, map[string]interface{}{
		"input": map[string]interface{}{"creatorID": creatorID},
	})

	created := data["createSession"].(map[string]interface{})
	if created["success"] != true {
		t.Fatalf("createSession failed: %v", created)
	}
	session := created["session"].(map[string]interface{})
	if session["creatorID"] != creatorID {
		t.Fatalf("unexpected creator %v", session["creatorID"])
	}
	if session["tempo"].(float64) != 120 || session["masterGain"].(float64) != 1 {
		t.Fatalf("unexpected transport defaults: %v", session)
	}
	sessionID := session["id"].(string)

	// Instrument with no mapping: attachable, brings no samples.
	data = postGraphQL(t, router, `mutation($input: InstrumentCreateInput!) {
		createInstrument(input: $input) {
			success
			instrument { id label group }
		}
	}`, map[string]interface{}{
		"input": map[string]interface{}{"label": "kit", "mapping": []interface{}{}},
	})
	instResp := data["createInstrument"].(map[string]interface{})
	if instResp["success"] != true {
		t.Fatalf("createInstrument failed: %v", instResp)
	}
	instrument := instResp["instrument"].(map[string]interface{})
	if instrument["group"] != "NO_GROUP" {
		t.Fatalf("expected default group, got %v", instrument["group"])
	}
	instrumentID := instrument["id"].(string)

	attach := func() map[string]interface{} {
		data := postGraphQL(t, router, `mutation($input: SessionUpdateInput!) {
			updateSession(input: $input) {
				success messageTemplate
				session { tracks { id color label noteResolution instrument { id } } trackOrder instruments { id } }
			}
		}`, map[string]interface{}{
			"input": map[string]interface{}{"sessionID": sessionID, "instrumentID": instrumentID},
		})
		return data["updateSession"].(map[string]interface{})
	}

	first := attach()
	if first["success"] != true {
		t.Fatalf("first attach failed: %v", first)
	}
	second := attach()
	if second["success"] != true {
		t.Fatalf("second attach failed: %v", second)
	}

	view := second["session"].(map[string]interface{})
	tracks := view["tracks"].([]interface{})
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks after two attaches, got %d", len(tracks))
	}
	instruments := view["instruments"].([]interface{})
	if len(instruments) != 2 {
		t.Fatalf("expected duplicated instrument references, got %d", len(instruments))
	}
	track := tracks[0].(map[string]interface{})
	if track["color"] != "pink" || track["label"] != "Untitled track" {
		t.Fatalf("unexpected track defaults: %v", track)
	}
	if track["instrument"].(map[string]interface{})["id"] != instrumentID {
		t.Fatalf("track instrument not resolved: %v", track)
	}

	// Attaching to an unknown session reports a structured failure, not a
	// transport error.
	data = postGraphQL(t, router, `mutation($input: SessionUpdateInput!) {
		updateSession(input: $input) { success messageTemplate }
	}`, map[string]interface{}{
		"input": map[string]interface{}{"sessionID": uuid.NewString()},
	})
	failed := data["updateSession"].(map[string]interface{})
	if failed["success"] != false || failed["messageTemplate"] != "mutation.updateSession.failure" {
		t.Fatalf("expected failure envelope, got %v", failed)
	}

	// The session query resolves the same view.
	data = postGraphQL(t, router, fmt.Sprintf(`query {
		session(id: %q) { id tracks { id } }
	}`, sessionID), nil)
	queried := data["session"].(map[string]interface{})
	if queried["id"] != sessionID {
		t.Fatalf("unexpected session %v", queried)
	}
	if len(queried["tracks"].([]interface{})) != 2 {
		t.Fatalf("expected 2 tracks from query, got %v", queried["tracks"])
	}

	// Unknown session resolves to null.
	data = postGraphQL(t, router, fmt.Sprintf(`query { session(id: %q) { id } }`, uuid.NewString()), nil)
	if data["session"] != nil {
		t.Fatalf("expected null session, got %v", data["session"])
	}
}
