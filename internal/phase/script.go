package phase

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/wslkit/wslkit/internal/constants"
	wslkiterrors "github.com/wslkit/wslkit/internal/errors"
)

// phase2ScriptTemplate is the PowerShell body generated by Phase 1. It binds
// the Windows user and kernel destination into the four outer-environment
// steps: write configuration, pause, restart, cleanup-self. The script is
// single-use and removes itself as its final action.
const phase2ScriptTemplate = `# Phase 2: Windows tasks
$ErrorActionPreference = "Stop"

Write-Host "Starting Phase 2: Windows tasks" -ForegroundColor Blue

try {
    # Create .wslconfig
    $wslConfigPath = "C:\Users\{{.User}}\.wslconfig"
    $wslConfig = @"
[wsl2]
kernel={{.KernelDest}}
"@

    Write-Host "Creating WSL config at $wslConfigPath" -ForegroundColor Green
    $wslConfig | Out-File -FilePath $wslConfigPath -Encoding UTF8

    # Let the configuration write settle before tearing WSL down
    Start-Sleep -Seconds {{.ConfigSettleSeconds}}

    Write-Host "Shutting down WSL..." -ForegroundColor Yellow
    wsl --shutdown

    Start-Sleep -Seconds {{.ShutdownSettleSeconds}}

    Write-Host "WSL automation completed successfully!" -ForegroundColor Green
    Write-Host "WSL will use the new kernel on next startup." -ForegroundColor Green

} catch {
    Write-Host "Phase 2 failed: $_" -ForegroundColor Red
    exit 1
}

# Cleanup
Remove-Item "{{.ScriptPath}}" -ErrorAction SilentlyContinue
`

//nolint:gochecknoglobals // Parsed once, read-only thereafter
var phase2Tmpl = template.Must(template.New(constants.Phase2ScriptName).Parse(phase2ScriptTemplate))

// scriptData carries the bindings rendered into the Phase 2 script.
type scriptData struct {
	User                  string
	KernelDest            string
	ScriptPath            string
	ConfigSettleSeconds   int
	ShutdownSettleSeconds int
}

// WindowsScriptPath returns the generated script's location in Windows path
// syntax, derived from the Windows-side temp directory.
func WindowsScriptPath(windowsTempDir string) string {
	return strings.ReplaceAll(windowsTempDir, "/", `\`) + `\` + constants.Phase2ScriptName
}

// RenderPhase2Script renders the Phase 2 script bound to the given Windows
// user, kernel destination, and self-deletion path.
func RenderPhase2Script(user, kernelDest, windowsScriptPath string) (string, error) {
	if user == "" {
		return "", fmt.Errorf("windows user %w", wslkiterrors.ErrEmptyValue)
	}

	var buf bytes.Buffer
	err := phase2Tmpl.Execute(&buf, scriptData{
		User:                  user,
		KernelDest:            kernelDest,
		ScriptPath:            windowsScriptPath,
		ConfigSettleSeconds:   int(constants.ConfigSettleDelay.Seconds()),
		ShutdownSettleSeconds: int(constants.ShutdownSettleDelay.Seconds()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render phase 2 script: %w", err)
	}
	return buf.String(), nil
}

// WritePhase2Script renders the script and writes it into the Windows temp
// directory as seen from WSL (the drvfs mount), creating the directory if
// needed. Returns the WSL-visible path of the written script.
func WritePhase2Script(mountDir, user, kernelDest, windowsScriptPath string) (string, error) {
	script, err := RenderPhase2Script(user, kernelDest, windowsScriptPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(mountDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create script directory: %w", err)
	}

	path := filepath.Join(mountDir, constants.Phase2ScriptName)
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil { //#nosec G306 -- the script must be readable by the Windows side
		return "", fmt.Errorf("failed to write phase 2 script: %w", err)
	}

	return path, nil
}
