package scenes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "townfolk-scene.schema.json"

// Schema reflects the JSON Schema for scene files from the Scene type.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(Scene))
	schema.Title = "Townfolk Scene"
	schema.Description = "A tile map with its NPCs and their dialogue"
	return schema
}

func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scenes: marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

var (
	compiledOnce sync.Once
	compiled     *validator.Schema
	compileErr   error
)

func compiledSchema() (*validator.Schema, error) {
	compiledOnce.Do(func() {
		data, err := SchemaJSON()
		if err != nil {
			compileErr = err
			return
		}
		c := validator.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("scenes: add schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("scenes: compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// ValidateJSON checks raw scene JSON against the reflected schema.
func ValidateJSON(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return nil
}
