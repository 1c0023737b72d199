package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"
)

// EngineVersion is the layout engine version that documents declare
// compatibility with through their engine field.
const EngineVersion = "1.4.0"

// checkEngine verifies that the engine version satisfies a PEP 440
// specifier such as ">=1.2,<2". An empty specifier accepts any engine.
func checkEngine(specifier string, engine string) error {
	specifier = strings.TrimSpace(specifier)
	if specifier == "" {
		return nil
	}
	specs, err := pep440.NewSpecifiers(specifier)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid engine specifier: %s", specifier)).
			WithCause(err)
	}
	version, err := pep440.Parse(engine)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("invalid engine version: %s", engine)).
			WithCause(err)
	}
	if !specs.Check(version) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("layout requires engine %s, running %s", specifier, engine))
	}
	return nil
}

// checkFragmentVersion requires a fragment to be at least the version its
// compose reference asks for, using Debian version ordering so revisions
// like 1.2-3 compare as expected.
func checkFragmentVersion(name string, required string, actual string) error {
	required = strings.TrimSpace(required)
	if required == "" {
		return nil
	}
	want, err := debversion.NewVersion(required)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid compose version for %s: %s", name, required)).
			WithCause(err)
	}
	have, err := debversion.NewVersion(strings.TrimSpace(actual))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid fragment version for %s: %s", name, actual)).
			WithCause(err)
	}
	if have.Compare(want) < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("fragment %s version %s is older than required %s", name, actual, required))
	}
	return nil
}
