package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/marketlens/stockcompare/internal/types"
	"github.com/marketlens/stockcompare/pkg/errors"
)

// ComparisonConfig describes one comparison run: the two dataset files, the
// instrument to compare and where the chart specification goes.
type ComparisonConfig struct {
	ProcessedFile   string       `yaml:"processed_file" json:"processed_file" jsonschema:"title=Processed File,description=Path to the post-cleaning CSV dataset,required" validate:"required"`
	UnprocessedFile string       `yaml:"unprocessed_file" json:"unprocessed_file" jsonschema:"title=Unprocessed File,description=Path to the pre-cleaning CSV dataset,required" validate:"required"`
	StockCode       int          `yaml:"stock_code" json:"stock_code" jsonschema:"title=Stock Code,description=Instrument identifier to compare,minimum=1" validate:"required,gt=0"`
	Period          types.Period `yaml:"period" json:"period" jsonschema:"title=Period,description=Bar interval of the source datasets" validate:"omitempty,oneof=weekly daily"`
	OutputFile      string       `yaml:"output_file" json:"output_file" jsonschema:"title=Output File,description=Path of the emitted chart specification"`
}

// Load reads and validates a comparison config from a YAML file.
func Load(path string) (ComparisonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ComparisonConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file: %s", path)
	}

	var config ComparisonConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ComparisonConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file: %s", path)
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return ComparisonConfig{}, err
	}

	return config, nil
}

// ApplyDefaults fills the fields the config may leave out.
func (c *ComparisonConfig) ApplyDefaults() {
	if c.Period == "" {
		c.Period = types.PeriodWeekly
	}

	if c.OutputFile == "" && c.StockCode > 0 {
		c.OutputFile = fmt.Sprintf("stock_%d_comparison_chart.json", c.StockCode)
	}
}

// Validate validates the ComparisonConfig fields.
func (c *ComparisonConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the ComparisonConfig
func (c *ComparisonConfig) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if strings.Contains(t.String(), "types.Period") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: types.AllPeriods,
				}
			}
			return nil
		},
	}

	// Generate schema from ComparisonConfig struct
	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "comparison-config"
	schema.Description = "Configuration schema for a data-cleaning comparison run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the ComparisonConfig
func (c *ComparisonConfig) GenerateSchemaJSON() (string, error) {
	schema := c.GenerateSchema()

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
