package config

import "github.com/conn-castle/omnisharp-client/internal/messages"

// FieldType classifies the kind of value a config field accepts.
type FieldType string

const (
	// FieldBool accepts true or false.
	FieldBool FieldType = "bool"
	// FieldEnum accepts one of a fixed set of options.
	FieldEnum FieldType = "enum"
	// FieldFreetext accepts arbitrary string input.
	FieldFreetext FieldType = "freetext"
	// FieldPath accepts a filesystem path; a leading ~ is expanded.
	FieldPath FieldType = "path"
	// FieldURL accepts an absolute http or https URL.
	FieldURL FieldType = "url"
	// FieldPathList accepts an array of filesystem paths.
	FieldPathList FieldType = "path_list"
)

// FieldOption describes a single selectable value for a field.
type FieldOption struct {
	Value       string
	Description string // empty for options without descriptions
}

// FieldDef describes a single config field's type, constraints, and valid options.
type FieldDef struct {
	Key         string
	Type        FieldType
	Env         string // environment variable overriding the field, if any
	Description string
	Options     []FieldOption
	AllowCustom bool // when true, enum fields also accept freetext values
}

// fields is the canonical ordered registry of all config fields.
var fields = []FieldDef{
	{
		Key:         "runtime.kind",
		Type:        FieldEnum,
		Description: messages.ConfigFieldKindDescription,
		Options: []FieldOption{
			{Value: "clrormono", Description: messages.ConfigKindClrOrMonoDescription},
			{Value: "coreclr", Description: messages.ConfigKindCoreClrDescription},
		},
	},
	{Key: "runtime.version", Type: FieldFreetext, Env: EnvVersion, Description: messages.ConfigFieldVersionDescription},
	{
		Key:         "runtime.platform",
		Type:        FieldEnum,
		AllowCustom: true,
		Description: messages.ConfigFieldPlatformDescription,
		Options: []FieldOption{
			{Value: "win32"},
			{Value: "darwin"},
			{Value: "linux"},
		},
	},
	{
		Key:         "runtime.arch",
		Type:        FieldEnum,
		Description: messages.ConfigFieldArchDescription,
		Options: []FieldOption{
			{Value: "x86"},
			{Value: "x64"},
		},
	},
	{Key: "runtime.install_root", Type: FieldPath, Env: EnvRuntimeDir, Description: messages.ConfigFieldInstallRootDescription},
	{Key: "runtime.server_path", Type: FieldPath, Env: EnvServerPath, Description: messages.ConfigFieldServerPathDescription},
	{Key: "runtime.bootstrap", Type: FieldBool, Description: messages.ConfigFieldBootstrapDescription},
	{Key: "download.release_base_url", Type: FieldURL, Description: messages.ConfigFieldReleaseURLDescription},
	{Key: "probe.fallback_dirs", Type: FieldPathList, Description: messages.ConfigFieldFallbackDirsDescription},
}

// fieldIndex provides O(1) lookup by key.
var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Key] = i
	}
	return idx
}

// LookupField returns the field definition for the given config key.
// Returns false when the key is not in the catalog.
func LookupField(key string) (FieldDef, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return FieldDef{}, false
	}
	return copyFieldDef(fields[i]), true
}

// Fields returns a copy of all registered field definitions in catalog order.
func Fields() []FieldDef {
	out := make([]FieldDef, len(fields))
	for i, f := range fields {
		out[i] = copyFieldDef(f)
	}
	return out
}

// FieldOptionValues returns the option values for a field as a plain string slice.
// Returns nil when the key is not in the catalog or has no options.
func FieldOptionValues(key string) []string {
	f, ok := LookupField(key)
	if !ok || len(f.Options) == 0 {
		return nil
	}
	values := make([]string, len(f.Options))
	for i, opt := range f.Options {
		values[i] = opt.Value
	}
	return values
}

// copyFieldDef returns a deep copy of a FieldDef so callers cannot mutate the registry.
func copyFieldDef(f FieldDef) FieldDef {
	if len(f.Options) > 0 {
		opts := make([]FieldOption, len(f.Options))
		copy(opts, f.Options)
		f.Options = opts
	}
	return f
}
