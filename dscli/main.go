package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/instancer"
	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/internal/ufoload"
	"github.com/npillmayer/instancer/varmodel"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'instancer'
func tracer() tracing.Trace {
	return tracing.Select("instancer")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.instancer": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	docname := flag.String("designspace", "", "Designspace document to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the designspace CLI")
	//
	// set up REPL
	repl, err := readline.New("ds > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load document to use
	if err := intp.loadDocument(*docname); err != nil { // document name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	doc      *ds.Document
	inst     *instancer.Instantiator
	repl     *readline.Instance
	location varmodel.Location // current design space location
}

func (intp *Intp) String() string {
	if intp == nil || intp.doc == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( doc=%s )", intp.doc.Path))
	sb.WriteString(" at " + formatLocation(intp.location, intp.doc.AxisOrder()))
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
	arg2 string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	AXES
	SOURCES
	INSTANCES
	RULES
	LOC
	GLYPH
	KERN
	INFO
	CHECK
	GENERATE
)

var opMap = map[string]int{
	"quit":      QUIT,
	"help":      HELP,
	"axes":      AXES,
	"sources":   SOURCES,
	"instances": INSTANCES,
	"rules":     RULES,
	"loc":       LOC,
	"glyph":     GLYPH,
	"kern":      KERN,
	"info":      INFO,
	"check":     CHECK,
	"generate":  GENERATE,
}

var opNames = []string{
	"quit",
	"help",
	"axes",
	"sources",
	"instances",
	"rules",
	"loc",
	"glyph",
	"kern",
	"info",
	"check",
	"generate",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].arg2 = ""
	}
}

func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Split(line, " ")
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":") // e.g.  "glyph:a" or "kern:T:o" or "loc:Weight=620"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if command.op[i].code <= QUIT {
			return &command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].arg2 = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Infof("%s", opNames[command.op[i].code])
		} else {
			tracer().Infof("%s: looking for '%s'", opNames[command.op[i].code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:      quitOp,
	HELP:      helpOp,
	AXES:      axesOp,
	SOURCES:   sourcesOp,
	INSTANCES: instancesOp,
	RULES:     rulesOp,
	LOC:       locOp,
	GLYPH:     glyphOp,
	KERN:      kernOp,
	INFO:      infoOp,
	CHECK:     checkOp,
	GENERATE:  generateOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op)
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// locOp moves the current location: "loc:Weight=620". Without an
// argument it resets to the document default.
func locOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		intp.location = intp.doc.DefaultDesignLocation()
		return nil, false
	}
	eq := strings.IndexByte(op.arg, '=')
	if eq < 0 {
		return fmt.Errorf("malformed location %q (expected axis=value)", op.arg), false
	}
	name := op.arg[:eq]
	axis, ok := intp.doc.Axis(name)
	if !ok {
		// allow addressing axes by tag
		for i := range intp.doc.Axes {
			if intp.doc.Axes[i].Tag == name {
				axis, ok = &intp.doc.Axes[i], true
				break
			}
		}
	}
	if !ok {
		return fmt.Errorf("unknown axis %q", name), false
	}
	v, err := strconv.ParseFloat(op.arg[eq+1:], 64)
	if err != nil {
		return fmt.Errorf("invalid axis value in %q", op.arg), false
	}
	intp.location[axis.Name] = v
	return nil, false
}

// --- Document Loading -------------------------------------------------

func (intp *Intp) loadDocument(docname string) (err error) {
	if docname == "" {
		return fmt.Errorf("no designspace document given (use -designspace)")
	}
	if intp.doc, err = ds.Load(docname); err != nil {
		return err
	}
	if err = intp.doc.LoadSourceFonts(ufoload.Load); err != nil {
		return err
	}
	if intp.inst, err = instancer.NewInstantiator(intp.doc, nil); err != nil {
		return err
	}
	intp.location = intp.doc.DefaultDesignLocation()
	pterm.Printf("designspace axes: %v\n", intp.doc.AxisOrder())
	return nil
}

// ----------------------------------------------------------------------

func formatLocation(loc varmodel.Location, order []string) string {
	parts := make([]string, 0, len(loc))
	for _, axis := range order {
		if v, ok := loc[axis]; ok {
			parts = append(parts, fmt.Sprintf("%s=%g", axis, v))
		}
	}
	return strings.Join(parts, ",")
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	if op.arg == "" {
		return true
	}
	return false
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
