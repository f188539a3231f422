package cmd

// LogFlags are the global logging options, exposed as --log.*.
type LogFlags struct {
	Level   string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"FOURCCGEN_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" type:"path" env:"FOURCCGEN_LOG_FILE"`
	RawFile string `help:"Write the exact preprocessor input and output to this file" type:"path" env:"FOURCCGEN_LOG_RAW_FILE"`
}
