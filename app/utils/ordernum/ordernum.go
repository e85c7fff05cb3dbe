// Package ordernum builds the human-facing order numbers shown to customers.
package ordernum

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

const Prefix = "KH"

var pattern = regexp.MustCompile(`^KH\d{9}$`)

// Generator produces order numbers of the form KH<6-digit time><3-digit random>.
// Numbers are unlikely to collide but are not guaranteed unique.
type Generator struct {
	Now    func() time.Time
	Random func(n int) int
}

func NewGenerator() *Generator {
	return &Generator{Now: time.Now, Random: rand.Intn}
}

func (g *Generator) Next() string {
	millis := g.Now().UnixMilli()
	return fmt.Sprintf("%s%06d%03d", Prefix, millis%1_000_000, g.Random(1000))
}

func Valid(orderNumber string) bool {
	return pattern.MatchString(orderNumber)
}
