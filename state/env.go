// Package state defines shared program state.
package state

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"tplprint/component"
	"tplprint/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Style template roots inherit, resolved from configuration once.
	Baseline component.EffectiveStyle

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Baseline: component.NewEffectiveStyle(),
		start:    time.Now(),
	}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// ImagesDir returns directory relative image sources of the template at
// path are resolved against.
func (e *LocalEnv) ImagesDir(path string) string {
	if e.Cfg != nil && len(e.Cfg.Document.ImagesDir) > 0 {
		return e.Cfg.Document.ImagesDir
	}
	return filepath.Dir(path)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
