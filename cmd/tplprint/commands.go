package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tplprint/assets"
	"tplprint/component"
	"tplprint/config"
	"tplprint/state"
)

// loadSource builds component tree from the single SOURCE argument. With
// debug report requested template itself goes into the report.
func loadSource(env *state.LocalEnv, cmd *cli.Command) (string, *component.Node, error) {
	if cmd.Args().Len() == 0 {
		return "", nil, errors.New("no template file specified")
	}
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	path := cmd.Args().Get(0)
	env.Rpt.Store(reportName("template", path), path)

	_, root, err := component.LoadFile(path, env.Log)
	if err != nil {
		return path, nil, err
	}
	env.Log.Debug("Template loaded", zap.String("path", path), zap.Stringer("root", root.Kind))
	return path, root, nil
}

// reportName turns file name into readable archive entry under dir.
func reportName(dir, path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return dir + "/" + slug.Make(strings.TrimSuffix(base, ext)) + strings.ToLower(ext)
}

// output writes command result to the program writer and keeps a copy in
// the debug report.
func output(env *state.LocalEnv, cmd *cli.Command, name, text string) error {
	env.Rpt.StoreData(name, []byte(text))

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("unable to write %s: %w", name, err)
	}
	return nil
}

func printTree(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	_, root, err := loadSource(env, cmd)
	if err != nil {
		return err
	}
	return output(env, cmd, "tree.txt", root.String())
}

func listFonts(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	_, root, err := loadSource(env, cmd)
	if err != nil {
		return err
	}

	var fonts []string
	if cmd.Bool("all") {
		fonts = slices.Collect(root.FontFamilies())
	} else {
		fonts = component.DistinctFontFamilies(root)
		sort.Sort(natural.StringSlice(fonts))
	}
	env.Log.Debug("Fonts collected", zap.Int("count", len(fonts)))

	var sb strings.Builder
	for _, f := range fonts {
		sb.WriteString(f)
		sb.WriteByte('\n')
	}
	return output(env, cmd, "fonts.txt", sb.String())
}

func printStyles(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	_, root, err := loadSource(env, cmd)
	if err != nil {
		return err
	}
	return output(env, cmd, "styles.txt", component.DumpStyles(root, env.Baseline))
}

func checkAssets(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	path, root, err := loadSource(env, cmd)
	if err != nil {
		return err
	}

	dir := env.ImagesDir(path)
	images, err := assets.Probe(ctx, root, dir, env.Log)
	if err != nil {
		return fmt.Errorf("unable to check images: %w", err)
	}

	var (
		sb     strings.Builder
		failed int
	)
	for i, img := range images {
		if img.Err != nil {
			failed++
			fmt.Fprintf(&sb, "%q\tERROR\t%v\n", img.Node.Image.Source, img.Err)
			continue
		}
		env.Rpt.Store(reportName(fmt.Sprintf("images/%d", i), img.Path), img.Path)
		tone := "color"
		if img.Grayscale {
			tone = "gray"
		}
		fmt.Fprintf(&sb, "%q\t%s\t%dx%d\t%s\t%s\n", img.Node.Image.Source, img.MIME, img.Width, img.Height, tone, img.Path)
	}
	if err := output(env, cmd, "assets.txt", sb.String()); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images could not be used (images directory %s)", failed, len(images), dir)
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		env.Log.Debug("Outputing configuration", zap.String("state", state), zap.String("file", "STDOUT"))
		return output(env, cmd, "dumpconfig.yaml", string(data))
	}

	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return fmt.Errorf("unable to write configuration to '%s': %w", fname, err)
	}
	return nil
}
