package core

// Fixed 定点数，低 8 位为小数部分（1/256 像素）
// 模拟内部只使用整数运算，保证客户端与服务器逐位一致
type Fixed int32

const (
	FixedShift       = 8
	FixedOne   Fixed = 1 << FixedShift
)

// FromInt 整数转定点
func FromInt(v int) Fixed {
	return Fixed(v << FixedShift)
}

// FromRatio 返回 num/den 的定点表示（向零取整）
func FromRatio(num, den int) Fixed {
	return Fixed(int64(num) * int64(FixedOne) / int64(den))
}

// Int 向下取整为整数像素
func (f Fixed) Int() int {
	return int(f >> FixedShift)
}

// Float 仅用于渲染和日志，模拟内部禁止使用
func (f Fixed) Float() float64 {
	return float64(f) / float64(FixedOne)
}

// Mul 定点乘法，结果向零取整（正负对称）
func (f Fixed) Mul(g Fixed) Fixed {
	p := int64(f) * int64(g)
	if p < 0 {
		return -Fixed((-p) >> FixedShift)
	}
	return Fixed(p >> FixedShift)
}

// Div 定点除法，除数为 0 时返回 0
func (f Fixed) Div(g Fixed) Fixed {
	if g == 0 {
		return 0
	}
	return Fixed((int64(f) << FixedShift) / int64(g))
}

func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Clamp 限制在 [lo, hi] 区间
func Clamp(v, lo, hi Fixed) Fixed {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SaturatedAdd 在不越过 [lo, hi] 的前提下累加 delta
// 当前值已经越界时保持不变（允许外力造成的超速）
func SaturatedAdd(lo, hi, current, delta Fixed) Fixed {
	if delta < 0 {
		if current < lo {
			return current
		}
		current += delta
		if current < lo {
			current = lo
		}
		return current
	}
	if current > hi {
		return current
	}
	current += delta
	if current > hi {
		current = hi
	}
	return current
}

// Vec 定点二维向量
type Vec struct {
	X, Y Fixed
}

// V 由整数像素构造向量
func V(x, y int) Vec {
	return Vec{X: FromInt(x), Y: FromInt(y)}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 按定点系数缩放
func (v Vec) Scale(s Fixed) Vec {
	return Vec{X: v.X.Mul(s), Y: v.Y.Mul(s)}
}

// IsZero 是否为零向量
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Length 向量长度（整数开方，结果为定点）
func (v Vec) Length() Fixed {
	x, y := int64(v.X), int64(v.Y)
	return Fixed(isqrt(uint64(x*x + y*y)))
}

// Normalize 返回单位向量，零向量返回零
func (v Vec) Normalize() Vec {
	l := v.Length()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X.Div(l), Y: v.Y.Div(l)}
}

// isqrt 整数平方根（牛顿迭代，向下取整）
func isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
