// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	InterpreterNotFoundId Id = iota + 1
	ConfigLoadFailedId
	EnvironmentCreateFailedId
	InstallFailedId
	BuildScriptFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue as terminal-styled Markdown. stylePath is a
// glamour style name ("dark", "light", "notty") or a path to a style file.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.markdown(), stylePath)
}

func (i *Issue) markdown() string {
	md := string(i.mdMsg)
	if len(i.extLinks) == 0 {
		return md
	}

	md += "\n\n## See also:\n"
	for _, link := range i.extLinks {
		md += "- <" + string(link) + ">\n"
	}
	return md
}

var (
	render = glamour.Render

	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# Python is not installed or not in PATH!

The build needs a Python interpreter, but none of the configured
candidates could be found or started.

## Things you can try:
- Install Python 3 and make sure it is on your PATH
- On Windows, tick *Add python.exe to PATH* in the installer, or install
  the *py* launcher
- Open a new terminal after installing so PATH changes take effect
- Point pylaunch at a specific interpreter:
~~~cue
interpreter: candidates: ["/usr/local/bin/python3.12"]
~~~`,
		extLinks: []HttpLink{
			"https://www.python.org/downloads/",
			"https://docs.python.org/3/using/windows.html#the-python-launcher-for-windows",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

pylaunch could not read or validate its configuration file.

## Things you can try:
- Check the file for CUE syntax errors
- Remove unknown fields; the schema is closed
- Print a known-good configuration and start from there:
~~~
$ pylaunch config dump
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	environmentCreateFailedIssue = &Issue{
		id: EnvironmentCreateFailedId,
		mdMsg: `
# Failed to create the virtual environment!

The interpreter was found, but ` + "`python -m venv`" + ` did not succeed.

## Things you can try:
- On Debian and Ubuntu, install the venv module:
~~~
$ sudo apt install python3-venv
~~~

- Make sure the project directory is writable
- Delete a half-created environment directory and run again`,
		extLinks: []HttpLink{"https://docs.python.org/3/library/venv.html"},
	}

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# Failed to install dependencies!

` + "`pip install -r`" + ` exited with an error. The build script was still started.

## Things you can try:
- Check that the manifest file exists and lists valid packages
- Check your network connection or proxy settings
- Re-run with ` + "`--verbose`" + ` to see pip's full output`,
		extLinks: []HttpLink{"https://pip.pypa.io/en/stable/user_guide/#requirements-files"},
	}

	buildScriptFailedIssue = &Issue{
		id: BuildScriptFailedId,
		mdMsg: `
# The build script failed!

The build entry point exited with a non-zero status.

## Things you can try:
- Read the script output above for the first error
- Run it by hand inside the environment to debug it
- Use ` + "`--strict`" + ` to make pylaunch report the script's exit status`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- The project directory is not writable
- The interpreter or environment scripts are not executable

## Things you can try:
- Check file/directory permissions
- Run pylaunch from a directory you own`,
	}

	issues = map[Id]*Issue{
		interpreterNotFoundIssue.Id():     interpreterNotFoundIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		environmentCreateFailedIssue.Id(): environmentCreateFailedIssue,
		installFailedIssue.Id():           installFailedIssue,
		buildScriptFailedIssue.Id():       buildScriptFailedIssue,
		permissionDeniedIssue.Id():        permissionDeniedIssue,
	}
)

// Values returns all registered issues ordered by Id.
func Values() []*Issue {
	v := maps.Values(issues)
	slices.SortFunc(v, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return v
}

// Get returns the registered issue for id, or nil if none exists.
func Get(id Id) *Issue {
	return issues[id]
}
