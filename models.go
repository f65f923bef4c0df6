package openapi

import "encoding/json"

// OpenAPI represents the root document of the OpenAPI v3 specification.
type OpenAPI struct {
	OpenAPI    string      `json:"openapi"`
	Info       Info        `json:"info"`
	Servers    []Server    `json:"servers,omitempty"`
	Paths      Paths       `json:"paths"`
	Components *Components `json:"components,omitempty"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type Paths map[string]*PathItem

type PathItem struct {
	Summary     string     `json:"summary,omitempty"`
	Description string     `json:"description,omitempty"`
	Get         *Operation `json:"get,omitempty"`
	Put         *Operation `json:"put,omitempty"`
	Post        *Operation `json:"post,omitempty"`
	Delete      *Operation `json:"delete,omitempty"`
	Options     *Operation `json:"options,omitempty"`
	Head        *Operation `json:"head,omitempty"`
	Patch       *Operation `json:"patch,omitempty"`
	Trace       *Operation `json:"trace,omitempty"`
}

type Operation struct {
	Tags        []string              `json:"tags,omitempty"`
	Summary     string                `json:"summary,omitempty"`
	Description string                `json:"description,omitempty"`
	OperationID string                `json:"operationId,omitempty"`
	Parameters  []*Parameter          `json:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty"`
	Responses   map[string]*Response  `json:"responses"`
	Security    []map[string][]string `json:"security,omitempty"`
}

type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"` // query, header, path, cookie
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

type RequestBody struct {
	Description string                `json:"description,omitempty"`
	Content     map[string]*MediaType `json:"content"`
	Required    bool                  `json:"required,omitempty"`
}

type Response struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

type Components struct {
	Schemas         map[string]*Schema         `json:"schemas,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

type SecurityScheme struct {
	Type   string      `json:"type"`
	Name   string      `json:"name,omitempty"`
	In     string      `json:"in,omitempty"`
	Scheme string      `json:"scheme,omitempty"`
	Bearer string      `json:"bearerFormat,omitempty"`
	Flows  *OAuthFlows `json:"flows,omitempty"`
}

type OAuthFlows struct {
	Implicit          *OAuthFlow `json:"implicit,omitempty"`
	Password          *OAuthFlow `json:"password,omitempty"`
	ClientCredentials *OAuthFlow `json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `json:"authorizationCode,omitempty"`
}

type OAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	RefreshURL       string            `json:"refreshUrl,omitempty"`
	Scopes           map[string]string `json:"scopes"`
}

// Schema describes the shape of a value. Besides the object form it also
// round-trips the JSON Schema boolean forms true and false, which schema
// compilers emit for unconstrained values and as an additionalProperties
// value; use TrueSchema and FalseSchema to construct those.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Description string             `json:"description,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []interface{}      `json:"enum,omitempty"`
	Example     interface{}        `json:"example,omitempty"`

	Title       string      `json:"title,omitempty"`
	Default     interface{} `json:"default,omitempty"`
	Minimum     *float64    `json:"minimum,omitempty"`
	Maximum     *float64    `json:"maximum,omitempty"`
	MinLength   *int64      `json:"minLength,omitempty"`
	MaxLength   *int64      `json:"maxLength,omitempty"`
	Pattern     string      `json:"pattern,omitempty"`
	MinItems    *int64      `json:"minItems,omitempty"`
	MaxItems    *int64      `json:"maxItems,omitempty"`
	UniqueItems bool        `json:"uniqueItems,omitempty"`

	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`

	// Defs holds compiler-local sub-schemas ($defs). Schema extensions
	// consume and strip it before fragments reach the document.
	Defs map[string]*Schema `json:"$defs,omitempty"`

	boolean *bool
}

// TrueSchema matches any value.
var TrueSchema = &Schema{boolean: boolPtr(true)}

// FalseSchema matches no value.
var FalseSchema = &Schema{boolean: boolPtr(false)}

func boolPtr(b bool) *bool { return &b }

func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.boolean != nil {
		if *s.boolean {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	}
	type alias Schema
	return json.Marshal((*alias)(s))
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*s = *TrueSchema
		return nil
	case "false":
		*s = *FalseSchema
		return nil
	}
	type alias Schema
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Schema(a)
	return nil
}
