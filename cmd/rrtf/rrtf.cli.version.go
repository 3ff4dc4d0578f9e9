package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Build metadata, set with -ldflags "-X main.version=..."
var (
	version   string
	commit    string
	branch    string
	buildTime string
)

// versionFiles are searched in order when no version was linked in
var versionFiles = []string{"versions.yaml", "../versions.yaml", "../../versions.yaml"}

// versionInfo is both the text and the JSON shape of the version command
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// versionsYAML represents the versions.yaml file structure
type versionsYAML struct {
	Project struct {
		Version string `yaml:"version"`
	} `yaml:"project"`
	Git struct {
		Commit string `yaml:"commit"`
		Branch string `yaml:"branch"`
	} `yaml:"git"`
	Build struct {
		Time string `yaml:"time"`
	} `yaml:"build"`
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet(CmdNameVersion)
	var format string
	fs.StringVar(&format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&format, FlagFormatShort, FlagDefaultFormat, "")

	err := fs.Parse(args)
	if err == nil && format != OutputFormatText && format != OutputFormatJSON {
		err = errors.New(ErrMsgInvalidFormat)
	}
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	v := getVersionInfo()
	if format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(v, "", JSONIndent)
		fmt.Fprintln(stdout, string(jsonBytes))
		return ExitCodeSuccess
	}

	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
		v.Version, v.Commit, v.Branch, v.BuildTime, v.GoVersion)
	return ExitCodeSuccess
}

func getVersionInfo() *versionInfo {
	v := &versionInfo{
		Version:   orUnknown(version),
		Commit:    orUnknown(commit),
		Branch:    orUnknown(branch),
		BuildTime: orUnknown(buildTime),
		GoVersion: runtime.Version(),
	}
	if version != "" {
		return v
	}

	for _, path := range versionFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var vy versionsYAML
		if err := yaml.Unmarshal(data, &vy); err != nil {
			continue
		}
		v.Version = orUnknown(vy.Project.Version)
		v.Commit = orUnknown(vy.Git.Commit)
		v.Branch = orUnknown(vy.Git.Branch)
		v.BuildTime = orUnknown(vy.Build.Time)
		break
	}
	return v
}

func orUnknown(s string) string {
	if s == "" {
		return VersionUnknown
	}
	return s
}
