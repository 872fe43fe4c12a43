package generators

import (
	"fmt"
	"math/rand"
	"strings"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness. Once the data
// runs out every choice is 0, so generation always terminates.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

func (s *ByteSource) Float64() float64 {
	if s.pos >= len(s.data) {
		return 0.0
	}
	v := int(s.data[s.pos])
	s.pos++
	return float64(v) / 255.0
}

// Generator generates random, syntactically valid spj programs. Loops
// are bounded by counters nothing else assigns, and functions only call
// functions declared before them, so every program terminates.
type Generator struct {
	src     RandomSource
	depth   int
	vars    []string
	funcs   []string
	classes []string
	counter int
}

const (
	MaxDepth      = 4
	MaxStatements = 4
	MaxLoop       = 4
)

var names = []string{"x", "y", "w", "q", "r"}

var words = []string{"", "ahoj", "svet", "žltý kôň", "čaj", "Ďateľ", "1", "a b"}

func New(seed int64) *Generator {
	return &Generator{src: &RandSource{rand.New(rand.NewSource(seed))}}
}

func NewFromData(data []byte) *Generator {
	return &Generator{src: &ByteSource{data: data}}
}

// Intn exposes the random source's Intn method for embedded structs.
func (g *Generator) Intn(n int) int {
	return g.src.Intn(n)
}

// Src returns the random source of the generator.
func (g *Generator) Src() RandomSource {
	return g.src
}

// GenerateProgram returns a program of a few top-level statements. The
// first statement always declares a variable so later ones have
// something to refer to.
func (g *Generator) GenerateProgram() string {
	var sb strings.Builder
	sb.WriteString(g.GenerateVarDecl())
	sb.WriteString("\n")
	count := g.src.Intn(MaxStatements) + 1
	for i := 0; i < count; i++ {
		sb.WriteString(g.GenerateStatement())
		sb.WriteString("\n")
		sb.WriteString(g.GenerateNoise())
	}
	return sb.String()
}

func (g *Generator) GenerateNoise() string {
	if g.src.Intn(10) != 0 {
		return ""
	}
	var sb strings.Builder
	count := g.src.Intn(3) + 1
	for i := 0; i < count; i++ {
		switch g.src.Intn(3) {
		case 0:
			sb.WriteString(" ")
		case 1:
			sb.WriteString("\t")
		case 2:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// MaybeNewline returns "\n" with ~30% probability, otherwise " ".
func (g *Generator) MaybeNewline() string {
	if g.src.Intn(3) == 0 {
		return "\n"
	}
	return " "
}

func (g *Generator) fresh(prefix string) string {
	g.counter++
	return fmt.Sprintf("%s%d", prefix, g.counter)
}

func (g *Generator) GenerateStatement() string {
	if g.depth >= MaxDepth {
		return fmt.Sprintf("Vypíš %s.", g.GenerateLiteral())
	}
	g.depth++
	defer func() { g.depth-- }()

	choice := g.src.Intn(12)
	switch {
	case choice < 2:
		return g.GenerateVarDecl()
	case choice < 4:
		return g.GeneratePrint()
	case choice < 5:
		return g.GenerateAssignment()
	case choice < 7:
		return g.GenerateIf()
	case choice < 8:
		return g.GenerateWhile()
	case choice < 9:
		return g.GenerateForIn()
	case choice < 10:
		return g.GenerateFunctionDecl()
	case choice < 11:
		return g.GenerateClassDecl()
	default:
		if len(g.funcs) == 0 {
			return g.GeneratePrint()
		}
		return fmt.Sprintf("%s.", g.GenerateCall())
	}
}

// GenerateBlock returns a parenthesized block. Variables it declares go
// out of the generator's view when it closes.
func (g *Generator) GenerateBlock(prefix ...string) string {
	saved := len(g.vars)
	defer func() { g.vars = g.vars[:saved] }()

	var sb strings.Builder
	sb.WriteString("(\n")
	for _, p := range prefix {
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	count := g.src.Intn(MaxStatements) + 1
	for i := 0; i < count; i++ {
		sb.WriteString(g.GenerateStatement())
		sb.WriteString("\n")
	}
	sb.WriteString(")")
	return sb.String()
}

func (g *Generator) GenerateVarDecl() string {
	value := g.GenerateExpression()
	name := names[g.src.Intn(len(names))]
	g.declare(name)
	return fmt.Sprintf("Nech %s je %s.", name, value)
}

func (g *Generator) declare(name string) {
	for _, v := range g.vars {
		if v == name {
			return
		}
	}
	g.vars = append(g.vars, name)
}

func (g *Generator) GeneratePrint() string {
	if g.src.Intn(4) == 0 {
		return fmt.Sprintf("Vypíš %s, %s a %s.", g.GenerateOperand(), g.GenerateOperand(), g.GenerateOperand())
	}
	return fmt.Sprintf("Vypíš %s.", g.GenerateExpression())
}

func (g *Generator) GenerateAssignment() string {
	if len(g.vars) == 0 {
		return g.GenerateVarDecl()
	}
	return fmt.Sprintf("nastav %s na %s.", g.pick(g.vars), g.GenerateExpression())
}

func (g *Generator) GenerateIf() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ak %s, tak %s", g.GenerateCondition(), g.GenerateBlock())
	switch g.src.Intn(3) {
	case 0:
		fmt.Fprintf(&sb, ", inak %s", g.GenerateBlock())
	case 1:
		fmt.Fprintf(&sb, ", inak Vypíš %s.", g.GenerateOperand())
	}
	return sb.String()
}

// GenerateWhile emits a loop over a private counter so it always ends.
func (g *Generator) GenerateWhile() string {
	i := g.fresh("počítadlo")
	limit := g.src.Intn(MaxLoop) + 1
	step := fmt.Sprintf("nastav %s na ku %s pripočítaj 1.", i, i)
	return fmt.Sprintf("Nech %s je 0.\nPokiaľ %s je menej ako %d, tak %s.", i, i, limit, g.GenerateBlock(step))
}

func (g *Generator) GenerateForIn() string {
	key, value := g.fresh("kľúč"), g.fresh("prvok")
	count := g.src.Intn(MaxLoop) + 1
	elems := make([]string, count)
	for i := range elems {
		elems[i] = g.GenerateLiteral()
	}

	saved := len(g.vars)
	g.vars = append(g.vars, key, value)
	body := g.GenerateBlock()
	g.vars = g.vars[:saved]

	return fmt.Sprintf("Pre každé %s a %s v objekte (nová inštancia triedy Pole, pre %s) %s.",
		key, value, list(elems), body)
}

// GenerateFunctionDecl declares a two-parameter function that ends with
// a return.
func (g *Generator) GenerateFunctionDecl() string {
	name := g.fresh("f")

	saved := len(g.vars)
	g.vars = append(g.vars, "p", "o")
	body := g.GenerateBlock()
	ret := g.GenerateExpression()
	g.vars = g.vars[:saved]

	// Splice the return into the block before its closing parenthesis.
	body = strings.TrimSuffix(body, ")") + fmt.Sprintf("Vráť %s.\n)", ret)
	g.funcs = append(g.funcs, name)
	return fmt.Sprintf("Nech %s je funkcia %s, definovaná pre p, predvolene %s a o.", name, body, g.GenerateLiteral())
}

func (g *Generator) GenerateClassDecl() string {
	name := g.fresh("Trieda")
	props := []string{
		fmt.Sprintf("x, predvolene %s", g.GenerateLiteral()),
		"y",
	}
	if len(g.classes) > 0 && g.src.Intn(2) == 0 {
		parent := g.pick(g.classes)
		g.classes = append(g.classes, name)
		return fmt.Sprintf("Nech %s je trieda %s rozširujúca triedu %s, obsahujúca %s.", name, name, parent, list(props))
	}
	g.classes = append(g.classes, name)
	return fmt.Sprintf("Nech %s je trieda %s obsahujúca %s.", name, name, list(props))
}

// GenerateExpression returns an expression valid wherever the grammar
// takes a postfix-level expression.
func (g *Generator) GenerateExpression() string {
	if g.depth >= MaxDepth {
		return g.GenerateLiteral()
	}
	g.depth++
	defer func() { g.depth-- }()

	switch g.src.Intn(14) {
	case 0, 1:
		return g.GenerateLiteral()
	case 2, 3:
		return g.GenerateReference()
	case 4:
		return fmt.Sprintf("ku %s pripočítaj %s", g.GenerateOperand(), g.GenerateOperand())
	case 5:
		return fmt.Sprintf("od %s odpočítaj %s", g.GenerateOperand(), g.GenerateOperand())
	case 6:
		return fmt.Sprintf("vynásob %s s %s", g.GenerateOperand(), g.GenerateOperand())
	case 7:
		return fmt.Sprintf("vydeľ %s s %s", g.GenerateOperand(), g.GenerateOperand())
	case 8:
		return g.GenerateCondition()
	case 9:
		return fmt.Sprintf("typ %s", g.GenerateOperand())
	case 10:
		return fmt.Sprintf("spoj %s, %s a %s", g.GenerateOperand(), g.GenerateOperand(), g.GenerateOperand())
	case 11:
		return g.GenerateCall()
	case 12:
		return g.GenerateNew()
	default:
		degree := g.src.Intn(4) + 2
		suffix := map[int]string{2: "há", 3: "tia"}[degree]
		if suffix == "" {
			suffix = "tá"
		}
		return fmt.Sprintf("%d-%s odmocnina z %d", degree, suffix, g.src.Intn(100))
	}
}

// GenerateOperand wraps anything but atoms in parentheses.
func (g *Generator) GenerateOperand() string {
	if g.src.Intn(3) == 0 {
		return fmt.Sprintf("(%s)", g.GenerateExpression())
	}
	if g.src.Intn(2) == 0 {
		return g.GenerateReference()
	}
	return g.GenerateLiteral()
}

func (g *Generator) GenerateCondition() string {
	left, right := g.GenerateOperand(), g.GenerateOperand()
	switch g.src.Intn(6) {
	case 0:
		return fmt.Sprintf("%s sa rovná %s", left, right)
	case 1:
		return fmt.Sprintf("%s je viac ako %s", left, right)
	case 2:
		return fmt.Sprintf("%s je menej ako %s", left, right)
	case 3:
		return fmt.Sprintf("%s je viac alebo sa rovná %s", left, right)
	case 4:
		return fmt.Sprintf("%s je menej alebo sa rovná %s", left, right)
	default:
		return fmt.Sprintf("nie je pravda, že %s", left)
	}
}

func (g *Generator) GenerateCall() string {
	if len(g.funcs) == 0 {
		return g.GenerateLiteral()
	}
	fn := g.pick(g.funcs)
	switch g.src.Intn(3) {
	case 0:
		return fmt.Sprintf("funkčná hodnota funkcie %s", fn)
	case 1:
		return fmt.Sprintf("funkčná hodnota funkcie %s, pre %s", fn, g.GenerateOperand())
	default:
		return fmt.Sprintf("funkčná hodnota funkcie %s, pre %s a %s", fn, g.GenerateOperand(), g.GenerateOperand())
	}
}

func (g *Generator) GenerateNew() string {
	if len(g.classes) == 0 || g.src.Intn(3) == 0 {
		return fmt.Sprintf("hodnota vlastnosti \"dĺžka\" objektu (nová inštancia triedy Pole, pre %s a %s)",
			g.GenerateLiteral(), g.GenerateLiteral())
	}
	class := g.pick(g.classes)
	if g.src.Intn(2) == 0 {
		return fmt.Sprintf("hodnota vlastnosti \"x\" objektu (nová inštancia triedy %s)", class)
	}
	return fmt.Sprintf("nová inštancia triedy %s", class)
}

func (g *Generator) GenerateReference() string {
	if len(g.vars) == 0 {
		return g.GenerateLiteral()
	}
	return g.pick(g.vars)
}

func (g *Generator) GenerateLiteral() string {
	switch g.src.Intn(6) {
	case 0, 1:
		return fmt.Sprintf("%d", g.src.Intn(100))
	case 2:
		return fmt.Sprintf("%d.%d", g.src.Intn(10), g.src.Intn(10)+1)
	case 3:
		return fmt.Sprintf("%q", words[g.src.Intn(len(words))])
	case 4:
		return "nedefinovaná hodnota"
	default:
		return "(-" + fmt.Sprintf("%d", g.src.Intn(10)) + ")"
	}
}

func (g *Generator) pick(from []string) string {
	return from[g.src.Intn(len(from))]
}

// list joins items the way the language does: "a, b a c".
func list(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " a " + items[len(items)-1]
}
