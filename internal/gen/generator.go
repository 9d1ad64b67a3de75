package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"reborrow-generator/internal/analyze"
	"reborrow-generator/internal/common"
	"reborrow-generator/internal/config"
	"reborrow-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Output is the file name written into each package directory.
	Output string
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
	// DebugDir receives <output>.unformatted.go sidecars when gofmt rejects
	// generated code. Empty writes them next to the package sources.
	DebugDir string
	// Logger receives progress messages. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Output:           config.DefaultOutput,
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Output == "" {
		config.Output = DefaultGeneratorConfig().Output
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{config: config, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// PkgPath is the import path of that package.
	PkgPath string
	// Filename is the name of the file (e.g., "reborrow_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full path the file is written to.
func (f GeneratedFile) Path() string {
	if f.Dir == "" {
		return f.Filename
	}

	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders one file per package holding records. Packages are
// rendered concurrently; files come back sorted by package path.
func (g *Generator) Generate(ctx context.Context, p *plan.ResolvedPlan) ([]GeneratedFile, error) {
	byPkg := p.ByPackage()
	paths := common.SortedKeys(byPkg)
	files := make([]GeneratedFile, len(paths))

	eg, ctx := errgroup.WithContext(ctx)

	for i, pkgPath := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info := p.Graph.Packages[pkgPath]
			if info == nil {
				return fmt.Errorf("package %s: not loaded", pkgPath)
			}

			file, err := g.generatePackage(info, byPkg[pkgPath])
			if err != nil {
				return fmt.Errorf("generating %s: %w", pkgPath, err)
			}

			files[i] = *file

			g.logger.Debug("package rendered", "package", pkgPath, "records", len(byPkg[pkgPath]))

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

// generatePackage renders the file for a single package.
func (g *Generator) generatePackage(info *analyze.PackageInfo, records []plan.ResolvedRecord) (*GeneratedFile, error) {
	data := g.buildFileData(info, records)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		Dir:      info.Dir,
		PkgPath:  info.Path,
		Filename: g.config.Output,
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		debugDir := g.config.DebugDir
		if debugDir == "" {
			debugDir = info.Dir
		}

		if werr := writeDebugUnformatted(debugDir, file.Filename, buf.Bytes()); werr != nil {
			g.logger.Warn("writing unformatted sidecar failed", "dir", debugDir, "error", werr)
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

// fileData holds everything the file template needs.
type fileData struct {
	PackageName      string
	Imports          []importSpec
	Records          []recordData
	GenerateComments bool
}

// recordData holds the rendered methods of one record.
type recordData struct {
	Name      string
	Recv      string
	ConstName string
	SelfType  string
	ConstType string
	Copy      bool
	// Full return statements of the three narrowing operations.
	IntoConst   string
	ReborrowMut string
	Reborrow    string
}

// fieldExprs are the three rendered expressions of a single field.
type fieldExprs struct {
	name        string
	intoConst   string
	reborrowMut string
	reborrow    string
}

func (g *Generator) buildFileData(info *analyze.PackageInfo, records []plan.ResolvedRecord) *fileData {
	imports := newImportSet(info.Path)
	data := &fileData{
		PackageName:      info.Name,
		GenerateComments: g.config.GenerateComments,
	}

	// Render every type first so the receiver name can avoid import names.
	pending := make([]pendingRecord, 0, len(records))
	for _, rr := range records {
		pending = append(pending, renderTypes(imports, rr))
	}

	for _, pr := range pending {
		data.Records = append(data.Records, pr.build(imports))
	}

	data.Imports = imports.specs()

	return data
}

// pendingRecord is a record whose type expressions have been rendered.
type pendingRecord struct {
	rr        plan.ResolvedRecord
	selfType  string
	constName string
	constType string
	view      string
	// Rendered counterpart type arguments, per field index.
	refArgs   [][]string
	constArgs [][]string
}

func renderTypes(imports *importSet, rr plan.ResolvedRecord) pendingRecord {
	rec := rr.Record
	pr := pendingRecord{
		rr:        rr,
		selfType:  rec.ID.Name + typeArgList(rec.TypeParams),
		refArgs:   make([][]string, len(rr.Fields)),
		constArgs: make([][]string, len(rr.Fields)),
	}

	if rec.Mode == analyze.ModeCopy {
		pr.constName = rec.ID.Name
		pr.constType = pr.selfType

		return pr
	}

	cname := rr.Const.Name
	if q := imports.use(rr.Const.PkgPath, rr.Const.PkgName); q != "" {
		cname = q + "." + cname
	}

	pr.constName = cname
	pr.constType = cname + typeArgList(rec.TypeParams)

	for i, f := range rr.Fields {
		switch f.Dispatch {
		case plan.DispatchOption, plan.DispatchResult, plan.DispatchPointer:
			pr.view = imports.use(plan.ViewPkgPath, "view")
		case plan.DispatchDirect, plan.DispatchMethod:
		}

		for _, t := range f.RefArgs {
			pr.refArgs[i] = append(pr.refArgs[i], imports.typeString(t))
		}

		for _, t := range f.ConstArgs {
			pr.constArgs[i] = append(pr.constArgs[i], imports.typeString(t))
		}
	}

	return pr
}

func (pr pendingRecord) build(imports *importSet) recordData {
	rec := pr.rr.Record
	recv := receiverName(rec, imports)

	rd := recordData{
		Name:      rec.ID.Name,
		Recv:      recv,
		ConstName: pr.constName,
		SelfType:  pr.selfType,
		ConstType: pr.constType,
		Copy:      rec.Mode == analyze.ModeCopy,
	}

	if rd.Copy {
		rd.IntoConst = "return " + recv
		rd.ReborrowMut = rd.IntoConst
		rd.Reborrow = rd.IntoConst

		return rd
	}

	exprs := make([]fieldExprs, len(pr.rr.Fields))
	for i, f := range pr.rr.Fields {
		exprs[i] = pr.exprsFor(recv, i, f)
	}

	rd.IntoConst = "return " + assemble(rec.Shape, pr.constType, exprs, func(e fieldExprs) string { return e.intoConst })
	rd.ReborrowMut = "return " + assemble(rec.Shape, pr.selfType, exprs, func(e fieldExprs) string { return e.reborrowMut })
	rd.Reborrow = "return " + assemble(rec.Shape, pr.constType, exprs, func(e fieldExprs) string { return e.reborrow })

	return rd
}

// exprsFor renders how field i is carried through each operation.
func (pr pendingRecord) exprsFor(recv string, i int, f plan.ResolvedField) fieldExprs {
	access := recv + "." + f.Name
	e := fieldExprs{name: f.Name}

	switch f.Dispatch {
	case plan.DispatchDirect:
		e.intoConst, e.reborrowMut, e.reborrow = access, access, access
	case plan.DispatchMethod:
		e.intoConst = access + "." + plan.MethodIntoConst + "()"
		e.reborrowMut = access + "." + plan.MethodReborrowMut + "()"
		e.reborrow = access + "." + plan.MethodReborrow + "()"
	case plan.DispatchOption:
		e.intoConst = fmt.Sprintf("%s.IntoConstOption[%s](%s)", pr.view, strings.Join(pr.constArgs[i], ", "), access)
		e.reborrowMut = fmt.Sprintf("%s.ReborrowMutOption(%s)", pr.view, access)
		e.reborrow = fmt.Sprintf("%s.ReborrowOption[%s](%s)", pr.view, strings.Join(pr.refArgs[i], ", "), access)
	case plan.DispatchResult:
		e.intoConst = fmt.Sprintf("%s.IntoConstResult[%s](%s)", pr.view, strings.Join(pr.constArgs[i], ", "), access)
		e.reborrowMut = fmt.Sprintf("%s.ReborrowMutResult(%s)", pr.view, access)
		e.reborrow = fmt.Sprintf("%s.ReborrowResult[%s](%s)", pr.view, strings.Join(pr.refArgs[i], ", "), access)
	case plan.DispatchPointer:
		e.intoConst = fmt.Sprintf("%s.GeneralizeAsRef(%s)", pr.view, access)
		e.reborrowMut = access
		e.reborrow = e.intoConst
	}

	return e
}

// assemble builds the composite literal of a record shape.
func assemble(shape analyze.Shape, typ string, exprs []fieldExprs, pick func(fieldExprs) string) string {
	if shape == analyze.ShapeUnit || len(exprs) == 0 {
		return typ + "{}"
	}

	var b strings.Builder

	b.WriteString(typ)
	b.WriteString("{\n")

	for _, e := range exprs {
		b.WriteString("\t\t")

		if shape == analyze.ShapeNamed {
			b.WriteString(e.name)
			b.WriteString(": ")
		}

		b.WriteString(pick(e))
		b.WriteString(",\n")
	}

	b.WriteString("\t}")

	return b.String()
}

// receiverCandidates are tried in order for the method receiver.
var receiverCandidates = []string{"v", "self", "this", "rcv"}

// receiverName picks a receiver that does not shadow a type parameter or an
// imported package.
func receiverName(rec *analyze.Record, imports *importSet) string {
	free := func(name string) bool {
		return !slices.Contains(rec.TypeParams, name) && !imports.taken(name)
	}

	for _, name := range receiverCandidates {
		if free(name) {
			return name
		}
	}

	for i := 0; ; i++ {
		name := fmt.Sprintf("v%d", i)
		if free(name) {
			return name
		}
	}
}

func typeArgList(params []string) string {
	if len(params) == 0 {
		return ""
	}

	return "[" + strings.Join(params, ", ") + "]"
}
