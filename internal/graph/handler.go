package graph

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
)

const maxUploadMemory = 32 << 20

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves GraphQL over POST, accepting both plain JSON requests and
// multipart requests carrying file uploads (the graphql-multipart-request
// convention: an "operations" field with the request, a "map" field binding
// form files to variable paths).
type Handler struct {
	schema graphql.Schema
	log    *logger.Logger
}

func NewHandler(baseLog *logger.Logger, schema graphql.Schema) *Handler {
	return &Handler{
		schema: schema,
		log:    baseLog.With("component", "graphql_handler"),
	}
}

func (h *Handler) ServeGraphQL(c *gin.Context) {
	var req *graphqlRequest
	var err error

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		req, err = h.parseMultipart(c)
	} else {
		req, err = parseJSON(c)
	}
	if err != nil {
		h.log.Warn("Malformed GraphQL request", "content_type", contentType, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": err.Error()}}})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})
	c.JSON(http.StatusOK, result)
}

func parseJSON(c *gin.Context) (*graphqlRequest, error) {
	var req graphqlRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// parseMultipart decodes the operations and map form fields and injects each
// uploaded file into the variables at its mapped paths.
func (h *Handler) parseMultipart(c *gin.Context) (*graphqlRequest, error) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, err
	}
	form := c.Request.MultipartForm

	var req graphqlRequest
	if err := json.Unmarshal([]byte(formValue(form.Value, "operations")), &req); err != nil {
		return nil, err
	}

	var fileMap map[string][]string
	if err := json.Unmarshal([]byte(formValue(form.Value, "map")), &fileMap); err != nil {
		return nil, err
	}

	for key, paths := range fileMap {
		headers := form.File[key]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		// gin closes multipart form files when the request finishes.
		upload := &domain.Upload{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Content:  file,
		}
		for _, path := range paths {
			setVariable(req.Variables, path, upload)
		}
	}
	return &req, nil
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// setVariable walks a dotted path like "variables.input.file" through the
// variables document and sets the leaf. List segments are numeric indexes.
// Unresolvable paths are ignored: execution will then fail on the missing
// upload, which is the right error surface.
func setVariable(variables map[string]interface{}, path string, value interface{}) {
	segments := strings.Split(path, ".")
	if len(segments) < 2 || segments[0] != "variables" {
		return
	}
	segments = segments[1:]

	var current interface{} = variables
	for i, segment := range segments {
		last := i == len(segments)-1
		switch node := current.(type) {
		case map[string]interface{}:
			if last {
				node[segment] = value
				return
			}
			current = node[segment]
		case []interface{}:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return
			}
			if last {
				node[idx] = value
				return
			}
			current = node[idx]
		default:
			return
		}
	}
}
