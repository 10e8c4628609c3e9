package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/soundgrid/sequencer-backend/internal/domain"
)

// uploadScalar passes multipart uploads through the variable pipeline. The
// handler injects *domain.Upload values into variables before execution; the
// scalar just validates that this is what arrived.
var uploadScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Upload",
	Description: "An uploaded file, provided through a multipart request.",
	Serialize: func(value interface{}) interface{} {
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		if upload, ok := value.(*domain.Upload); ok {
			return upload
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		// Uploads can only arrive as variables.
		return nil
	},
})

func newEnum(name, description string, values []string) *graphql.Enum {
	cfg := graphql.EnumValueConfigMap{}
	for _, v := range values {
		cfg[v] = &graphql.EnumValueConfig{Value: v}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:        name,
		Description: description,
		Values:      cfg,
	})
}

// schemaTypes holds every named type of the schema so resolvers and the
// schema constructor share one instance of each.
type schemaTypes struct {
	MaterialColor    *graphql.Enum
	FilterType       *graphql.Enum
	OversamplingType *graphql.Enum

	GainProcessing       *graphql.Object
	FilterProcessing     *graphql.Object
	DelayProcessing      *graphql.Object
	DistorsionProcessing *graphql.Object
	AudioProcessing      *graphql.Object

	Sample            *graphql.Object
	InstrumentMapping *graphql.Object
	Instrument        *graphql.Object
	Cell              *graphql.Object
	Track             *graphql.Object
	Session           *graphql.Object

	MutationResponse           *graphql.Interface
	SampleMutationResponse     *graphql.Object
	InstrumentMutationResponse *graphql.Object
	SessionMutationResponse    *graphql.Object

	SampleCreateInput            *graphql.InputObject
	SampleUpdateInput            *graphql.InputObject
	InstrumentMappingCreateInput *graphql.InputObject
	InstrumentCreateInput        *graphql.InputObject
	SessionCreateInput           *graphql.InputObject
	SessionUpdateInput           *graphql.InputObject
}

func newSchemaTypes() *schemaTypes {
	t := &schemaTypes{}

	t.MaterialColor = newEnum("MaterialColor",
		"Named color tokens for track coloring.", domain.MaterialColors)
	t.FilterType = newEnum("FilterType",
		"Biquad filter types for the filter audio processing.", domain.FilterTypes)
	t.OversamplingType = newEnum("OversamplingType",
		"Oversampling modes for distorsion audio processing.", domain.OversamplingTypes)

	t.GainProcessing = graphql.NewObject(graphql.ObjectConfig{
		Name:        "GainProcessing",
		Description: "Gain settings for audio processing.",
		Fields: graphql.Fields{
			"gain": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	t.FilterProcessing = graphql.NewObject(graphql.ObjectConfig{
		Name:        "FilterProcessing",
		Description: "Biquad filter settings for audio processing.",
		Fields: graphql.Fields{
			"enabled":   &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"type":      &graphql.Field{Type: graphql.NewNonNull(t.FilterType)},
			"frequency": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"detune":    &graphql.Field{Type: graphql.Int},
			"gain":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"q":         &graphql.Field{Type: graphql.Float},
		},
	})

	t.DelayProcessing = graphql.NewObject(graphql.ObjectConfig{
		Name:        "DelayProcessing",
		Description: "Delay settings for audio processing.",
		Fields: graphql.Fields{
			"enabled":   &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"delayTime": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	t.DistorsionProcessing = graphql.NewObject(graphql.ObjectConfig{
		Name:        "DistorsionProcessing",
		Description: "Wave-shaper settings for audio processing.",
		Fields: graphql.Fields{
			"enabled":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"curve":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Float)))},
			"oversample": &graphql.Field{Type: graphql.NewNonNull(t.OversamplingType)},
		},
	})

	t.AudioProcessing = graphql.NewObject(graphql.ObjectConfig{
		Name:        "AudioProcessing",
		Description: "Audio processing settings.",
		Fields: graphql.Fields{
			"gain":       &graphql.Field{Type: graphql.NewNonNull(t.GainProcessing)},
			"filter":     &graphql.Field{Type: t.FilterProcessing},
			"delay":      &graphql.Field{Type: t.DelayProcessing},
			"distorsion": &graphql.Field{Type: t.DistorsionProcessing},
		},
	})

	t.Sample = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Sample",
		Description: "An uploaded audio file's metadata record.",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"filename":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"url":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"type":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"label":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"group":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	t.InstrumentMapping = graphql.NewObject(graphql.ObjectConfig{
		Name:        "InstrumentMapping",
		Description: "Mapping entry binding a MIDI note to a sample.",
		Fields: graphql.Fields{
			"note":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"sample": &graphql.Field{Type: graphql.NewNonNull(t.Sample)},
			"detune": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	t.Instrument = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Instrument",
		Description: "Instrument used to build a sequencer track.",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"label":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"group":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"samples":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.Sample)))},
			"mapping":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.InstrumentMapping)))},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	t.Cell = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Cell",
		Description: "One step slot in a track's pattern grid.",
		Fields: graphql.Fields{
			"scheduled":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"midi":       &graphql.Field{Type: graphql.Int},
			"processing": &graphql.Field{Type: graphql.NewNonNull(t.AudioProcessing)},
		},
	})

	t.Track = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Track",
		Description: "A track part of the session sequencer.",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"label":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"color":          &graphql.Field{Type: graphql.NewNonNull(t.MaterialColor)},
			"noteResolution": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"instrument":     &graphql.Field{Type: graphql.NewNonNull(t.Instrument)},
			"muted":          &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"soloed":         &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"cells":          &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.Cell)))},
			"processing":     &graphql.Field{Type: graphql.NewNonNull(t.AudioProcessing)},
		},
	})

	t.Session = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Session",
		Description: "A sequencer project: transport state, tracks and the instruments and samples they use.",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"creatorID":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"tempo":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"masterGain":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"activeTrackID":  &graphql.Field{Type: graphql.ID},
			"activeCellBeat": &graphql.Field{Type: graphql.Int},
			"trackOrder":     &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
			"tracks":         &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.Track)))},
			"instruments":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.Instrument)))},
			"samples":        &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.Sample)))},
			"createdAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	mutationResponseFields := func() graphql.Fields {
		return graphql.Fields{
			"code":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"success":         &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"messageTemplate": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"message":         &graphql.Field{Type: graphql.String},
			"error":           &graphql.Field{Type: graphql.String},
		}
	}

	t.MutationResponse = graphql.NewInterface(graphql.InterfaceConfig{
		Name:        "MutationResponse",
		Description: "Common envelope of every mutation response.",
		Fields:      mutationResponseFields(),
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case *SampleMutationResponse:
				return t.SampleMutationResponse
			case *InstrumentMutationResponse:
				return t.InstrumentMutationResponse
			case *SessionMutationResponse:
				return t.SessionMutationResponse
			}
			return nil
		},
	})

	sampleResponseFields := mutationResponseFields()
	sampleResponseFields["sample"] = &graphql.Field{Type: t.Sample}
	t.SampleMutationResponse = graphql.NewObject(graphql.ObjectConfig{
		Name:       "SampleMutationResponse",
		Interfaces: []*graphql.Interface{t.MutationResponse},
		Fields:     sampleResponseFields,
	})

	instrumentResponseFields := mutationResponseFields()
	instrumentResponseFields["instrument"] = &graphql.Field{Type: t.Instrument}
	t.InstrumentMutationResponse = graphql.NewObject(graphql.ObjectConfig{
		Name:       "InstrumentMutationResponse",
		Interfaces: []*graphql.Interface{t.MutationResponse},
		Fields:     instrumentResponseFields,
	})

	sessionResponseFields := mutationResponseFields()
	sessionResponseFields["session"] = &graphql.Field{Type: t.Session}
	t.SessionMutationResponse = graphql.NewObject(graphql.ObjectConfig{
		Name:       "SessionMutationResponse",
		Interfaces: []*graphql.Interface{t.MutationResponse},
		Fields:     sessionResponseFields,
	})

	t.SampleCreateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SampleCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"file":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(uploadScalar)},
			"label": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"group": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	t.SampleUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SampleUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"label": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"group": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	t.InstrumentMappingCreateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "InstrumentMappingCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"note":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"sampleID": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"detune":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	t.InstrumentCreateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "InstrumentCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"label":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"group":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"mapping": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.InstrumentMappingCreateInput)))},
		},
	})

	t.SessionCreateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SessionCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"creatorID": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	t.SessionUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SessionUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"sessionID":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"instrumentID": &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	return t
}

// NewSchema assembles the executable schema over the given resolver set.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := newSchemaTypes()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"sampleList": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.Sample))),
				Resolve: r.SampleList,
			},
			"instrumentList": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.Instrument))),
				Resolve: r.InstrumentList,
			},
			"session": &graphql.Field{
				Type: t.Session,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.Session,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createSample": &graphql.Field{
				Type: graphql.NewNonNull(t.SampleMutationResponse),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.SampleCreateInput)},
				},
				Resolve: r.CreateSample,
			},
			"updateSample": &graphql.Field{
				Type: graphql.NewNonNull(t.SampleMutationResponse),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.SampleUpdateInput)},
				},
				Resolve: r.UpdateSample,
			},
			"deleteSample": &graphql.Field{
				Type: graphql.NewNonNull(t.SampleMutationResponse),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.DeleteSample,
			},
			"createInstrument": &graphql.Field{
				Type: graphql.NewNonNull(t.InstrumentMutationResponse),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.InstrumentCreateInput)},
				},
				Resolve: r.CreateInstrument,
			},
			"createSession": &graphql.Field{
				Type: graphql.NewNonNull(t.SessionMutationResponse),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.SessionCreateInput)},
				},
				Resolve: r.CreateSession,
			},
			"updateSession": &graphql.Field{
				Type: graphql.NewNonNull(t.SessionMutationResponse),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.SessionUpdateInput)},
				},
				Resolve: r.UpdateSession,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
		Types: []graphql.Type{
			t.SampleMutationResponse,
			t.InstrumentMutationResponse,
			t.SessionMutationResponse,
		},
	})
}
