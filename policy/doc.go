// Package policy provides optional declarative rules applied before a launch
// starts a process, for example a dry run that starts nothing or an allow list
// of executables.
package policy
