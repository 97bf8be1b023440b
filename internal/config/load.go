package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads a stack file and applies environment overrides. Environment
// variables win over file values: PRIVATEGW_STAGE overrides stage, and so on.
func Load(path string) (*Stack, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("PRIVATEGW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key so env overrides apply even when the file omits it
	v.SetDefault("stage", "")
	v.SetDefault("domains", []string{})
	v.SetDefault("vpc_endpoint", "")
	v.SetDefault("base_path", "")
	v.SetDefault("binary_media_types", []string{})
	v.SetDefault("description", "")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var stack Stack
	if err := v.Unmarshal(&stack); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	stack.Path = path

	if err := Validate(&stack); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &stack, nil
}

// Validate checks the stack against its field constraints. The returned
// error names the offending fields in stack-file terms.
func Validate(stack *Stack) error {
	check := validator.New(validator.WithRequiredStructEnabled())
	check.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := check.Struct(stack)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("validation failed on %s", strings.Join(fields, ", "))
}
