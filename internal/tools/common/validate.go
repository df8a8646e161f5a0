package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// ValidationError reports arguments that do not match a tool's input schema.
type ValidationError struct {
	Tool     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Problems, "; "))
}

// Validator checks call arguments against the input schema a tool declares.
// Properties not declared in the schema are rejected.
type Validator struct {
	tool   string
	schema *jsonschema.Schema
}

// NewValidator compiles the input schema of tool.
func NewValidator(tool mcp.Tool) (*Validator, error) {
	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input schema of %s: %w", tool.Name, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode input schema of %s: %w", tool.Name, err)
	}
	doc["additionalProperties"] = false

	schemaDoc, err := toJSONValue(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare input schema of %s: %w", tool.Name, err)
	}

	url := "https://gworkspace-mcp.local/tools/" + tool.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to add input schema of %s: %w", tool.Name, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile input schema of %s: %w", tool.Name, err)
	}

	return &Validator{tool: tool.Name, schema: schema}, nil
}

// Validate returns a *ValidationError when args do not satisfy the schema.
// Missing arguments validate as an empty object.
func (v *Validator) Validate(args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	instance, err := toJSONValue(args)
	if err != nil {
		return &ValidationError{Tool: v.tool, Problems: []string{err.Error()}}
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &ValidationError{Tool: v.tool, Problems: []string{err.Error()}}
	}
	problems := describe(verr)
	sort.Strings(problems)
	return &ValidationError{Tool: v.tool, Problems: problems}
}

// describe flattens the cause tree into one line per failing leaf.
func describe(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		location := "/" + strings.Join(verr.InstanceLocation, "/")
		return []string{fmt.Sprintf("%s: %s", location, verr.ErrorKind.LocalizedString(englishPrinter))}
	}
	var problems []string
	for _, cause := range verr.Causes {
		problems = append(problems, describe(cause)...)
	}
	return problems
}

// toJSONValue round-trips v through the validator's JSON decoder so numbers
// are represented the way it expects.
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}
