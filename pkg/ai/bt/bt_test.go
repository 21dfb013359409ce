package bt

import "testing"

type counter struct{ calls []string }

func leaf(name string, s Status) Node[*counter] {
	return &Action[*counter]{Do: func(c *counter) Status {
		c.calls = append(c.calls, name)
		return s
	}}
}

func TestComposites(t *testing.T) {
	tests := []struct {
		name  string
		node  Node[*counter]
		want  Status
		calls int
	}{
		{"selector stops on success", &Selector[*counter]{Children: []Node[*counter]{leaf("a", StatusFailure), leaf("b", StatusSuccess), leaf("c", StatusSuccess)}}, StatusSuccess, 2},
		{"selector all fail", &Selector[*counter]{Children: []Node[*counter]{leaf("a", StatusFailure), leaf("b", StatusFailure)}}, StatusFailure, 2},
		{"sequence stops on running", &Sequence[*counter]{Children: []Node[*counter]{leaf("a", StatusSuccess), leaf("b", StatusRunning), leaf("c", StatusSuccess)}}, StatusRunning, 2},
		{"sequence all succeed", &Sequence[*counter]{Children: []Node[*counter]{leaf("a", StatusSuccess), leaf("b", StatusSuccess)}}, StatusSuccess, 2},
		{"nil condition", &Condition[*counter]{}, StatusFailure, 0},
		{"inverter", &Inverter[*counter]{Child: leaf("a", StatusFailure)}, StatusSuccess, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &counter{}
			if got := tt.node.Tick(c); got != tt.want {
				t.Fatalf("status = %v, want %v", got, tt.want)
			}
			if len(c.calls) != tt.calls {
				t.Fatalf("calls = %v", c.calls)
			}
		})
	}
}
