package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/flverkit/pkg/encoding"
	"github.com/Faultbox/flverkit/pkg/shader"
)

// layoutFunc picks the static or skinned layout builder.
func layoutFunc(r shader.Resolver, kind string) (func(*shader.Info) (shader.Layout, error), error) {
	switch kind {
	case "static", "map":
		return r.StaticLayout, nil
	case "skinned", "character", "chr":
		return r.SkinnedLayout, nil
	default:
		return nil, fmt.Errorf("unknown layout kind %q (want static or skinned)", kind)
	}
}

func (a *app) cmdLayout(args []string) error {
	fs := newFlagSet("layout", "[-kind static|skinned] <material>...")
	kind := fs.String("kind", "static", "Layout kind: static (map piece) or skinned (character)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return usageError(fs)
	}

	r, table, err := a.resolver()
	if err != nil {
		return err
	}
	build, err := layoutFunc(r, *kind)
	if err != nil {
		return err
	}

	for _, name := range fs.Args() {
		info, err := r.Resolve(name, table)
		if err != nil {
			return err
		}
		layout, err := build(info)
		if err != nil {
			return err
		}
		if fs.NArg() > 1 {
			fmt.Fprintf(a.out, "%s:\n", name)
		}
		printLayout(a, layout)
	}
	return nil
}

func printLayout(a *app, layout shader.Layout) {
	for i, s := range layout {
		fmt.Fprintf(a.out, "  %2d  %-12s %-22s index=%d unk_x00=%d\n", i, s.Semantic, s.Format, s.Index, s.UnkX00)
	}
	fmt.Fprintf(a.out, "  (%d slots, %d UV channels)\n", len(layout), layout.UVChannelCount())
}

func (a *app) cmdInfo(args []string) error {
	fs := newFlagSet("info", "<material>...")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return usageError(fs)
	}

	r, table, err := a.resolver()
	if err != nil {
		return err
	}

	for i, name := range fs.Args() {
		info, err := r.Resolve(name, table)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		printInfo(a, info)
	}
	return nil
}

func printInfo(a *app, info *shader.Info) {
	source := "descriptor"
	if info.Guessed {
		source = "name (guessed)"
	}

	fmt.Fprintf(a.out, "Material:   %s\n", info.Name)
	fmt.Fprintf(a.out, "Shader:     %s\n", info.ShaderStem)
	fmt.Fprintf(a.out, "Generation: %s\n", info.Generation)
	fmt.Fprintf(a.out, "Source:     %s\n", source)
	fmt.Fprintf(a.out, "Category:   %s\n", info.Category)
	fmt.Fprintf(a.out, "Slots:      %d\n", info.SlotCount())
	fmt.Fprintf(a.out, "UVs:        %v\n", info.UsedUVIndices())

	var flags []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"alpha", info.Alpha},
		{"edge", info.Edge},
		{"spec", info.Spec},
		{"detail_bump", info.DetailBump},
		{"snow_roughness", info.HasSnowRoughness},
		{"tangent", info.HasTangent()},
		{"bitangent", info.HasBitangent()},
		{"lightmap", info.HasLightmap()},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	if info.Generation == shader.ER {
		amsn := ""
		for _, c := range []struct {
			code string
			on   bool
		}{{"A", info.Albedo}, {"M", info.Metallic}, {"S", info.Sheen}, {"N", info.Normal}, {"_V", info.V}} {
			if c.on {
				amsn += c.code
			}
		}
		flags = append(flags, "["+amsn+"]")
	}
	fmt.Fprintf(a.out, "Flags:      %s\n", strings.Join(flags, " "))

	fmt.Fprintln(a.out, "Samplers:")
	for _, t := range info.SamplerTypes {
		fmt.Fprintf(a.out, "  %-48s uv %d", t, info.SamplerUVIndices[t])
		if scale, ok := info.SamplerUVScales[t]; ok {
			fmt.Fprintf(a.out, "  scale (%g, %g)", scale[0], scale[1])
		}
		if group, ok := info.SamplerUVGroups[t]; ok {
			fmt.Fprintf(a.out, "  group %d", group)
		}
		fmt.Fprintln(a.out)
	}
}

// batchResult is the outcome for one name of a batch run.
type batchResult struct {
	layout shader.Layout
	info   *shader.Info
	err    error
}

func (a *app) cmdBatch(args []string) error {
	fs := newFlagSet("batch", "[-encoding utf8|shift_jis|utf16] [-kind static|skinned] [-j n] <names-file>")
	encName := fs.String("encoding", "utf8", "Text encoding of the name list")
	kind := fs.String("kind", "static", "Layout kind: static or skinned")
	workers := fs.Int("j", a.cfg.Resolver.Workers, "Concurrent resolutions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError(fs)
	}

	enc, err := encoding.ParseEncoding(*encName)
	if err != nil {
		return err
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()
	names, err := encoding.ReadNames(f, enc)
	if err != nil {
		return err
	}

	r, table, err := a.resolver()
	if err != nil {
		return err
	}
	build, err := layoutFunc(r, *kind)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := resolveAll(ctx, r, table, build, names, *workers)
	if err != nil {
		return err
	}

	failed := 0
	for i, name := range names {
		res := results[i]
		if res.err != nil {
			failed++
			a.log.Error("failed to resolve material", zap.String("name", name), zap.Error(res.err))
			continue
		}
		marker := ""
		if res.info.Guessed {
			marker = " (guessed)"
		}
		fmt.Fprintf(a.out, "%s%s\t%s\n", name, marker, res.layout)
	}

	fmt.Fprintf(os.Stderr, "\n(%d materials resolved, %d failed)\n", len(names)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d materials failed", failed, len(names))
	}
	return nil
}

// resolveAll resolves names on up to workers goroutines. Per-name failures
// are reported in the results; only cancellation aborts the run.
func resolveAll(
	ctx context.Context,
	r shader.Resolver,
	table shader.DescriptorTable,
	build func(*shader.Info) (shader.Layout, error),
	names []string,
	workers int,
) ([]batchResult, error) {
	cache := shader.NewCache()
	results := make([]batchResult, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info, err := cache.Resolve(r, name, table)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].info = info
			results[i].layout, results[i].err = build(info)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
