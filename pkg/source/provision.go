package source

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultScript generates the battery value files.
const DefaultScript = "/usr/sbin/fake_battery_values.sh"

// Provisioner prepares the values a module reads when it opens. It runs
// once per open and must finish before any value is read.
type Provisioner interface {
	Provision(ctx context.Context) error
}

// ProvisionerFunc adapts a function to Provisioner.
type ProvisionerFunc func(ctx context.Context) error

// Provision implements Provisioner.
func (f ProvisionerFunc) Provision(ctx context.Context) error {
	return f(ctx)
}

// Nop leaves the value directory as it is.
var Nop Provisioner = ProvisionerFunc(func(context.Context) error { return nil })

// ScriptProvisioner runs a shell script expected to write the value files.
// A non-zero exit status is an error.
type ScriptProvisioner struct {
	Shell  string
	Script string
}

var _ Provisioner = &ScriptProvisioner{}

// NewScriptProvisioner returns a provisioner running script with sh.
func NewScriptProvisioner(script string) *ScriptProvisioner {
	if script == "" {
		script = DefaultScript
	}
	return &ScriptProvisioner{
		Shell:  "sh",
		Script: script,
	}
}

// Provision implements Provisioner. There is no timeout beyond ctx.
func (p *ScriptProvisioner) Provision(ctx context.Context) error {
	shell := p.Shell
	if shell == "" {
		shell = "sh"
	}

	logrus.WithFields(logrus.Fields{
		"shell":  shell,
		"script": p.Script,
	}).Debug("running provisioning script")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, p.Script)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return pkgerrors.Wrapf(err, "provisioning script %s failed: %s", p.Script, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// Provisioner kinds accepted by New.
const (
	KindScript  = "script"
	KindProfile = "profile"
	KindHost    = "host"
	KindNone    = "none"
)

// New builds the provisioner of the given kind. An empty kind means
// KindScript.
func New(kind, dir, script, profile string) (Provisioner, error) {
	switch kind {
	case "", KindScript:
		return NewScriptProvisioner(script), nil
	case KindProfile:
		if profile == "" {
			return nil, pkgerrors.New("profile provisioner needs a profile path")
		}
		return &ProfileProvisioner{Path: profile, Dir: dir}, nil
	case KindHost:
		return NewHostProvisioner(dir), nil
	case KindNone:
		return Nop, nil
	default:
		return nil, pkgerrors.Errorf("unknown provisioner %q", kind)
	}
}
