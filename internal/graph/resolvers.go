package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/apierr"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
	"github.com/soundgrid/sequencer-backend/internal/services"
	"github.com/soundgrid/sequencer-backend/internal/validate"
)

// Mutation envelopes. Code is always "200": business-logic failures are
// reported through Success/Error, not through transport status codes.
type SampleMutationResponse struct {
	Code            string         `json:"code"`
	Success         bool           `json:"success"`
	MessageTemplate string         `json:"messageTemplate"`
	Message         string         `json:"message"`
	Error           *string        `json:"error,omitempty"`
	Sample          *domain.Sample `json:"sample,omitempty"`
}

type InstrumentMutationResponse struct {
	Code            string                 `json:"code"`
	Success         bool                   `json:"success"`
	MessageTemplate string                 `json:"messageTemplate"`
	Message         string                 `json:"message"`
	Error           *string                `json:"error,omitempty"`
	Instrument      *domain.InstrumentView `json:"instrument,omitempty"`
}

type SessionMutationResponse struct {
	Code            string              `json:"code"`
	Success         bool                `json:"success"`
	MessageTemplate string              `json:"messageTemplate"`
	Message         string              `json:"message"`
	Error           *string             `json:"error,omitempty"`
	Session         *domain.SessionView `json:"session,omitempty"`
}

// Resolver implements every query and mutation field by delegating to the
// service layer.
type Resolver struct {
	log         *logger.Logger
	samples     services.SampleService
	instruments services.InstrumentService
	sessions    services.SessionService
}

func NewResolver(
	baseLog *logger.Logger,
	samples services.SampleService,
	instruments services.InstrumentService,
	sessions services.SessionService,
) *Resolver {
	return &Resolver{
		log:         baseLog.With("component", "graph"),
		samples:     samples,
		instruments: instruments,
		sessions:    sessions,
	}
}

func (r *Resolver) SampleList(p graphql.ResolveParams) (interface{}, error) {
	return r.samples.List(p.Context)
}

func (r *Resolver) InstrumentList(p graphql.ResolveParams) (interface{}, error) {
	return r.instruments.List(p.Context)
}

func (r *Resolver) Session(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	view, err := r.sessions.Get(p.Context, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		// Missing session resolves to null, not an error.
		return nil, nil
	}
	return view, nil
}

func (r *Resolver) CreateSample(p graphql.ResolveParams) (interface{}, error) {
	failure := func(reason string) *SampleMutationResponse {
		return &SampleMutationResponse{
			Code:            "200",
			Success:         false,
			MessageTemplate: "mutation.createSample.failure",
			Message:         "Failed to create sample",
			Error:           &reason,
		}
	}

	input, _ := p.Args["input"].(map[string]interface{})
	upload, ok := input["file"].(*domain.Upload)
	if !ok || upload == nil {
		return failure("File upload required"), nil
	}
	label := optionalString(input, "label")
	group := optionalString(input, "group")

	sample, err := r.samples.Create(p.Context, upload, label, group)
	if err != nil {
		if apierr.IsKind(err, apierr.KindValidation) {
			// Upload validation rejects the whole mutation rather than
			// returning an envelope.
			return nil, err
		}
		r.log.Error("createSample failed", "filename", upload.Filename, "error", err)
		return failure(err.Error()), nil
	}

	return &SampleMutationResponse{
		Code:            "200",
		Success:         true,
		MessageTemplate: "mutation.createSample.success",
		Message:         fmt.Sprintf("Sample %s created successfully", sample.ID),
		Sample:          sample,
	}, nil
}

func (r *Resolver) UpdateSample(p graphql.ResolveParams) (interface{}, error) {
	failure := func(reason string) *SampleMutationResponse {
		return &SampleMutationResponse{
			Code:            "200",
			Success:         false,
			MessageTemplate: "mutation.updateSample.failure",
			Message:         "Failed to update sample",
			Error:           &reason,
		}
	}

	id, _ := p.Args["id"].(string)
	if !validate.UUID(id) {
		return failure(fmt.Sprintf("UUID required, %s given", id)), nil
	}
	input, _ := p.Args["input"].(map[string]interface{})

	sample, err := r.samples.Update(p.Context, id, services.SampleUpdateInput{
		Label: optionalString(input, "label"),
		Group: optionalString(input, "group"),
	})
	if err != nil {
		r.log.Error("updateSample failed", "sample_id", id, "error", err)
		return failure(err.Error()), nil
	}
	if sample == nil {
		return failure(fmt.Sprintf("Sample %s not found", id)), nil
	}

	return &SampleMutationResponse{
		Code:            "200",
		Success:         true,
		MessageTemplate: "mutation.updateSample.success",
		Message:         fmt.Sprintf("Sample %s updated successfully", sample.ID),
		Sample:          sample,
	}, nil
}

func (r *Resolver) DeleteSample(p graphql.ResolveParams) (interface{}, error) {
	failure := func(reason string) *SampleMutationResponse {
		return &SampleMutationResponse{
			Code:            "200",
			Success:         false,
			MessageTemplate: "mutation.deleteSample.failure",
			Message:         "Failed to delete sample",
			Error:           &reason,
		}
	}

	id, _ := p.Args["id"].(string)
	if !validate.UUID(id) {
		return failure(fmt.Sprintf("UUID required, %s given", id)), nil
	}

	sample, err := r.samples.Delete(p.Context, id)
	if err != nil {
		r.log.Error("deleteSample failed", "sample_id", id, "error", err)
		return failure(err.Error()), nil
	}
	if sample == nil {
		return failure(fmt.Sprintf("Sample %s not found", id)), nil
	}

	return &SampleMutationResponse{
		Code:            "200",
		Success:         true,
		MessageTemplate: "mutation.deleteSample.success",
		Message:         fmt.Sprintf("Sample %s deleted successfully", sample.ID),
		Sample:          sample,
	}, nil
}

func (r *Resolver) CreateInstrument(p graphql.ResolveParams) (interface{}, error) {
	failure := func(reason string) *InstrumentMutationResponse {
		return &InstrumentMutationResponse{
			Code:            "200",
			Success:         false,
			MessageTemplate: "mutation.createInstrument.failure",
			Message:         "Failed to create instrument",
			Error:           &reason,
		}
	}

	input, _ := p.Args["input"].(map[string]interface{})
	label, _ := input["label"].(string)
	if label == "" {
		return failure("Label required"), nil
	}
	group := optionalString(input, "group")

	rawMapping, _ := input["mapping"].([]interface{})
	mapping := make([]services.InstrumentMappingInput, 0, len(rawMapping))
	for _, raw := range rawMapping {
		entry, _ := raw.(map[string]interface{})
		note, _ := entry["note"].(int)
		sampleID, _ := entry["sampleID"].(string)
		detune, _ := entry["detune"].(int)

		if !validate.MIDINote(note) {
			return failure(fmt.Sprintf("MIDI note required, %d given", note)), nil
		}
		if !validate.UUID(sampleID) {
			return failure(fmt.Sprintf("UUID required, %s given", sampleID)), nil
		}
		if !validate.Detune(detune) {
			return failure(fmt.Sprintf("Detune in cents required, %d given", detune)), nil
		}
		mapping = append(mapping, services.InstrumentMappingInput{
			Note:     note,
			SampleID: sampleID,
			Detune:   detune,
		})
	}

	view, err := r.instruments.Create(p.Context, services.InstrumentCreateInput{
		Label:   label,
		Group:   group,
		Mapping: mapping,
	})
	if err != nil {
		r.log.Error("createInstrument failed", "label", label, "error", err)
		return failure(err.Error()), nil
	}

	return &InstrumentMutationResponse{
		Code:            "200",
		Success:         true,
		MessageTemplate: "mutation.createInstrument.success",
		Message:         fmt.Sprintf("Instrument %s created successfully", view.ID),
		Instrument:      view,
	}, nil
}

func (r *Resolver) CreateSession(p graphql.ResolveParams) (interface{}, error) {
	failure := func(reason string) *SessionMutationResponse {
		return &SessionMutationResponse{
			Code:            "200",
			Success:         false,
			MessageTemplate: "mutation.createSession.failure",
			Message:         "Failed to create session",
			Error:           &reason,
		}
	}

	// creatorID is an opaque identifier, not necessarily a UUID.
	input, _ := p.Args["input"].(map[string]interface{})
	creatorID, _ := input["creatorID"].(string)
	if creatorID == "" {
		return failure("Creator ID required"), nil
	}

	result, err := r.sessions.Create(p.Context, creatorID)
	if err != nil {
		r.log.Error("createSession failed", "creator_id", creatorID, "error", err)
		return failure(err.Error()), nil
	}
	return sessionResponse(result), nil
}

func (r *Resolver) UpdateSession(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})
	sessionID, _ := input["sessionID"].(string)
	instrumentID := optionalString(input, "instrumentID")

	result, err := r.sessions.AttachInstrument(p.Context, sessionID, instrumentID)
	if err != nil {
		r.log.Error("updateSession failed", "session_id", sessionID, "error", err)
		reason := err.Error()
		return &SessionMutationResponse{
			Code:            "200",
			Success:         false,
			MessageTemplate: "mutation.updateSession.failure",
			Message:         "Failed to update session",
			Error:           &reason,
		}, nil
	}
	return sessionResponse(result), nil
}

func sessionResponse(result *services.SessionResult) *SessionMutationResponse {
	return &SessionMutationResponse{
		Code:            "200",
		Success:         result.Success,
		MessageTemplate: result.MessageTemplate,
		Message:         result.Message,
		Session:         result.Session,
	}
}

func optionalString(input map[string]interface{}, key string) *string {
	if v, ok := input[key].(string); ok {
		return &v
	}
	return nil
}
