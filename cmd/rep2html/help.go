package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rep2html [command] [flags] [rep ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert documents to HTML (default)")
	fmt.Fprintln(w, "  doctor     Check renderers, assets and browser")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'rep2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rep2html convert [flags] [rep ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert documents to HTML. Each rep is a file path or a document number;")
	fmt.Fprintln(w, "5 means rep-0005.rst in the input directory. With no arguments every")
	fmt.Fprintln(w, "rep-*.rst and rep-*.txt in the input directory is converted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -d, --input <dir>          Directory holding the documents")
	fmt.Fprintln(w, "  -o, --output <dir>         Output directory (default: next to each source)")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Publishing:")
	fmt.Fprintln(w, "  -i, --install <dir>        Copy pages, sources and css/rep.css into dir")
	fmt.Fprintln(w, "  -b, --browse               Open converted pages (document 0 with no args)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Links:")
	fmt.Fprintln(w, "      --rfc-url <pattern>    RFC link pattern, e.g. https://www.rfc-editor.org/rfc/rfc%d")
	fmt.Fprintln(w, "      --doc-url <pattern>    Document link pattern, e.g. rep-%04d.html")
	fmt.Fprintln(w, "      --source-url <pattern> Source link pattern for revision dates")
	fmt.Fprintln(w, "      --trust <address>      Publish this author address as a mailto link")
	fmt.Fprintln(w, "      --date-format <s>      Defaulted revision dates, e.g. DD-MMM-YYYY")
	fmt.Fprintln(w, "                             Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --template <s>         Page template name or file path")
	fmt.Fprintln(w, "      --style <s>            Stylesheet name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>     Directory with templates/ and styles/ overrides")
	fmt.Fprintln(w, "      --stylesheet-href <s>  Stylesheet URL linked from pages")
	fmt.Fprintln(w, "      --inline-style         Embed the stylesheet in each page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show each conversion and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  REP2HTML_CONFIG, REP2HTML_INPUT_DIR, REP2HTML_OUTPUT_DIR,")
	fmt.Fprintln(w, "  REP2HTML_WORKERS, REP2HTML_LOG_LEVEL")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: rep2html doctor [--json] [-c config]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Report renderer availability per content type, template and")
		fmt.Fprintln(env.Stdout, "stylesheet loading, and whether a browser is available for --browse.")
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: rep2html config [-c config]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the configuration after applying the file and REP2HTML_* variables.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: rep2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: rep2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
