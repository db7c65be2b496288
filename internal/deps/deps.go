package deps

import (
	"os/exec"
	"strings"
)

// Status represents the installation status of a dependency
type Status struct {
	Name      string
	Installed bool
	Path      string
	Version   string
	Purpose   string
}

// Optional lists the external programs hueprompt can use when present
var Optional = []struct {
	Name        string
	VersionArgs []string
	Purpose     string
}{
	{"notify-send", []string{"--version"}, "desktop notifications"},
	{"wl-copy", []string{"--version"}, "clipboard on Wayland (OSC52 is used otherwise)"},
}

// Check looks up name on PATH and reads the first line of its version output
func Check(name string, versionArgs ...string) Status {
	path, err := exec.LookPath(name)
	if err != nil {
		return Status{Name: name, Installed: false}
	}

	status := Status{
		Name:      name,
		Installed: true,
		Path:      path,
	}

	cmd := exec.Command(path, versionArgs...)
	output, err := cmd.Output()
	if err == nil {
		// parse first line as version
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}

// CheckAll reports every optional dependency
func CheckAll() []Status {
	result := make([]Status, 0, len(Optional))
	for _, dep := range Optional {
		status := Check(dep.Name, dep.VersionArgs...)
		status.Purpose = dep.Purpose
		result = append(result, status)
	}
	return result
}

// CheckNotifySend checks if notify-send is installed and returns its status
func CheckNotifySend() Status {
	return Check("notify-send", "--version")
}

// CheckWlCopy checks if wl-copy is installed and returns its status
func CheckWlCopy() Status {
	return Check("wl-copy", "--version")
}
