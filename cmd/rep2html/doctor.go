package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	rep2html "github.com/alnah/go-rep2html"
	"github.com/alnah/go-rep2html/internal/assets"
	"github.com/alnah/go-rep2html/internal/config"
	"github.com/alnah/go-rep2html/internal/hints"
	"github.com/alnah/go-rep2html/internal/logging"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string         `json:"status"`
	Renderers []rendererInfo `json:"renderers"`
	Assets    assetInfo      `json:"assets"`
	Browser   browserInfo    `json:"browser"`
	Env       envInfo        `json:"environment"`
	Output    outputInfo     `json:"output"`
	Warnings  []string       `json:"warnings,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
}

// rendererInfo reports whether a content type can be converted.
type rendererInfo struct {
	ContentType string `json:"content_type"`
	Available   bool   `json:"available"`
	Reason      string `json:"reason,omitempty"`
}

// assetInfo reports template and stylesheet loading.
type assetInfo struct {
	Loaded      bool   `json:"loaded"`
	BasePath    string `json:"base_path,omitempty"`
	StyleRules  int    `json:"style_rules"`
	StyleErrors int    `json:"style_errors"`
	Error       string `json:"error,omitempty"`
}

// browserInfo holds browser detection results for --browse.
type browserInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

// outputInfo reports whether pages can be written.
type outputInfo struct {
	Dir      string `json:"dir"`
	Writable bool   `json:"writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = ready (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	configName := fs.StringP("config", "c", "", "config file name or path")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	cfg, err := loadConfig(*configName)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	result := runDoctor(cfg, env)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkConverter(result, cfg)
	checkBrowser(result, env)
	checkEnvironment(result)
	checkOutput(result, cfg)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkConverter builds a converter from cfg, which loads the template and
// stylesheet, then asks it about every known content type.
func checkConverter(result *doctorResult, cfg *config.Config) {
	result.Assets.BasePath = cfg.Assets.BasePath

	conv, err := rep2html.NewConverter(converterOptions(cfg, logging.New(config.LogQuiet, io.Discard))...)
	if err != nil {
		result.Assets.Error = err.Error()
		result.Errors = append(result.Errors, fmt.Sprintf("Page assets: %v", err))
		return
	}
	result.Assets.Loaded = true

	stats, err := assets.InspectStylesheet(conv.Style())
	switch {
	case err != nil:
		result.Warnings = append(result.Warnings, fmt.Sprintf("Stylesheet could not be parsed: %v", err))
	case stats.Errors > 0:
		result.Warnings = append(result.Warnings, fmt.Sprintf("Stylesheet has %d malformed construct(s)", stats.Errors))
	}
	result.Assets.StyleRules = stats.Rules
	result.Assets.StyleErrors = stats.Errors

	for _, ct := range rep2html.KnownContentTypes {
		info := rendererInfo{ContentType: ct, Available: true}
		if err := conv.Supports(ct); err != nil {
			info.Available = false
			info.Reason = err.Error()
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Documents of type %s will be skipped with an error", ct))
		}
		result.Renderers = append(result.Renderers, info)
	}
}

// checkBrowser looks for a browser; only --browse needs one.
func checkBrowser(result *doctorResult, env *Environment) {
	path, found := env.LookBrowser()
	result.Browser = browserInfo{Found: found, Path: path}
	if !found {
		result.Warnings = append(result.Warnings, "No browser found; --browse will fail")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer()
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkOutput verifies the output directory accepts new files.
func checkOutput(result *doctorResult, cfg *config.Config) {
	dir := cfg.Output.DefaultDir
	if dir == "" {
		dir = "."
	}
	result.Output.Dir = dir

	f, err := os.CreateTemp(dir, ".rep2html-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s", dir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.Output.Writable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "rep2html doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Renderers")
	for _, info := range r.Renderers {
		if info.Available {
			fmt.Fprintf(w, "  [OK] %s\n", info.ContentType)
		} else {
			fmt.Fprintf(w, "  [WARN] %s: %s\n", info.ContentType, info.Reason)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	switch {
	case r.Assets.Loaded && r.Assets.BasePath != "":
		fmt.Fprintf(w, "  [OK] Template and stylesheet loaded (overrides from %s)\n", r.Assets.BasePath)
	case r.Assets.Loaded:
		fmt.Fprintln(w, "  [OK] Template and stylesheet loaded (embedded)")
	default:
		fmt.Fprintf(w, "  [ERROR] %s\n", r.Assets.Error)
	}
	if r.Assets.Loaded {
		fmt.Fprintf(w, "  [OK] Stylesheet: %d rule(s)\n", r.Assets.StyleRules)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser")
	if r.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Browser.Path)
	} else {
		fmt.Fprintln(w, "  [WARN] Not found (only needed for --browse)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.Output.Writable {
		fmt.Fprintf(w, "  [OK] Output directory writable: %s\n", r.Output.Dir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Output directory not writable: %s\n", r.Output.Dir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
