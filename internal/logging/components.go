package logging

// Component constants for structured logging
const (
	ComponentStartup  = "startup"
	ComponentDecode   = "decode"
	ComponentPipeline = "pipeline"
	ComponentEncode   = "encode"
	ComponentBatch    = "batch"
	ComponentPreset   = "preset"
)
