package platform

import (
	"fmt"
	"strings"
	"text/template"
)

var launchAgentTemplate = template.Must(template.New("plist").Funcs(template.FuncMap{"xml": xmlEscape}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{xml .Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{xml .ExecPath}}</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`))

// launchAgentLabel is the launchd label, also used as the plist file name.
func launchAgentLabel(appName string) string {
	return "io.sgsd." + autostartSlug(appName)
}

func launchAgentPlist(label, execPath string) (string, error) {
	var builder strings.Builder
	err := launchAgentTemplate.Execute(&builder, struct {
		Label    string
		ExecPath string
	}{Label: label, ExecPath: execPath})
	if err != nil {
		return "", fmt.Errorf("render plist: %w", err)
	}
	return builder.String(), nil
}

func xmlEscape(value string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	).Replace(value)
}
