package platform

import "strings"

// Command is a fully built process invocation
type Command struct {
	Name string
	Args []string
	// HideConsole suppresses the console window on Windows; ignored elsewhere
	HideConsole bool
}

// String renders the command for logs and error context
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// PowerShellCommand wraps a single PowerShell statement in a hidden, profile-less interpreter call
func PowerShellCommand(interpreter, statement string) Command {
	return Command{
		Name:        interpreter,
		Args:        []string{"-NoProfile", "-NonInteractive", "-Command", statement},
		HideConsole: true,
	}
}

// OpenFolderStatement starts the file manager with path as its argument
func OpenFolderStatement(fileManager, path string) string {
	return "Start-Process -FilePath " + QuotePowerShell(fileManager) + " -ArgumentList " + QuotePowerShell(path)
}

// OpenFileStatement starts path itself, letting the OS pick the associated application
func OpenFileStatement(path string) string {
	return "Start-Process -FilePath " + QuotePowerShell(path)
}

// CopyStatement copies src to dest, replacing dest
func CopyStatement(src, dest string) string {
	return "Copy-Item -LiteralPath " + QuotePowerShell(src) + " -Destination " + QuotePowerShell(dest) + " -Force"
}
