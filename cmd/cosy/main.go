// Command cosy is a thin CLI demo: load a cosy.yaml specification file
// (internal/specfile), run cosy.Solve against it, and print the
// resulting trees. It is not a REPL and has no persisted state or
// network surface — spec.md §6 holds for the library; this binary is
// just a convenience wrapper over it, grounded on the teacher's
// cmd/funxy/main.go flag-parsing shape, reduced to the façade's actual
// surface.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/cosy-synth/cosy"
	"github.com/cosy-synth/cosy/internal/config"
	"github.com/cosy-synth/cosy/internal/specfile"
	"github.com/cosy-synth/cosy/internal/types"
	"github.com/cosy-synth/cosy/internal/utils"
)

func main() {
	var (
		target    = flag.String("target", "", "component name naming the query type's component, or -ctor/-literal to build one")
		ctor      = flag.String("ctor", "", "target type: a bare constructor name, e.g. fib")
		literal   = flag.String("literal", "", "target type's literal argument, e.g. 10 (paired with -literal-group)")
		litGroup  = flag.String("literal-group", "", "parameter-space group for -literal")
		maxCount  = flag.Int("max-count", cosy.DefaultMaxCount, "maximum number of trees to enumerate")
		showSpace = flag.Bool("show", false, "print the pruned solution space instead of enumerating trees")
		debug     = flag.Bool("debug", false, "print internal errors with a stack trace")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <cosy.yaml>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if os.Getenv("COSY_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	defer func() {
		if r := recover(); r != nil {
			if *debug {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "cosy: internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	path, err := utils.ResolveSpecPath("", flag.Arg(0))
	if err != nil {
		fail(err)
	}

	file, err := specfile.Load(path)
	if err != nil {
		fail(err)
	}

	query, err := resolveQuery(file, *target, *ctor, *literal, *litGroup)
	if err != nil {
		fail(err)
	}

	components := make([]cosy.Component[string], 0, len(file.Components))
	for name, spec := range file.Components {
		components = append(components, cosy.Component[string]{Name: name, Identity: name, Spec: spec})
	}

	// The CLI has no Go callables to bind components to — it is a
	// demo for the synthesizer and solution space, not the
	// interpreter — so Solve is only ever asked for trees, never
	// interpreted values; passing a nil lookup is enough for that.
	c, err := cosy.New(components, file.ParameterSpace, file.Taxonomy, nil)
	if err != nil {
		fail(err)
	}

	start := time.Now()
	it, err := c.Solve(query, *maxCount)
	if err != nil {
		fail(err)
	}

	if *showSpace {
		fmt.Print(it.Show())
		return
	}

	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	count := 0
	for {
		result, ok, err := it.Next()
		if err != nil {
			fail(err)
		}
		if !ok {
			break
		}
		count++
		if colorize {
			fmt.Printf("\033[2m%d:\033[0m %s\n", count, result.Tree.String())
		} else {
			fmt.Printf("%d: %s\n", count, result.Tree.String())
		}
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "enumerated %s tree(s) in %s\n", humanize.Comma(int64(count)), elapsed.Round(time.Millisecond))
}

// resolveQuery builds the query Type from the CLI flags: either a
// named component's own specification (-target, when that component's
// Spec is a bare Type with no parameters), or a freestanding
// constructor/literal built from -ctor/-literal/-literal-group.
func resolveQuery(file *specfile.File, target, ctor, literal, litGroup string) (types.Type, error) {
	switch {
	case target != "":
		spec, ok := file.Components[target]
		if !ok {
			return nil, fmt.Errorf("cosy: no component named %q in specification", target)
		}
		t, ok := spec.(types.Type)
		if !ok {
			return nil, fmt.Errorf("cosy: component %q takes parameters; it cannot be used directly as a query — use -ctor/-literal instead", target)
		}
		return t, nil

	case ctor != "" && literal != "":
		if litGroup == "" {
			return nil, fmt.Errorf("cosy: -literal requires -literal-group")
		}
		return types.NewConstructor(ctor, types.NewLiteral(literal, litGroup)), nil

	case ctor != "":
		return types.Nullary(ctor), nil

	default:
		return nil, fmt.Errorf("cosy: specify -target or -ctor to build a query type")
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "cosy: %s\n", err)
	os.Exit(1)
}
