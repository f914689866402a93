// Package query describes picture filters independently of the storage engine.
// The repository layer translates a Spec into concrete SQL clauses.
package query

// Predicate 单个过滤条件
type Predicate interface {
	isPredicate()
}

// Eq 字段等值匹配
type Eq struct {
	Field string
	Value interface{}
}

// Contains 字段子串匹配
type Contains struct {
	Field string
	Text  string
}

// AnyOf 任一子条件成立即可
type AnyOf []Predicate

func (Eq) isPredicate()       {}
func (Contains) isPredicate() {}
func (AnyOf) isPredicate()    {}

// Order 排序方式
type Order struct {
	Field string
	Asc   bool
}

// Spec 条件之间为“且”关系；Order 为 nil 表示不排序
type Spec struct {
	Where []Predicate
	Order *Order
}

// And 追加条件
func (s *Spec) And(p ...Predicate) {
	s.Where = append(s.Where, p...)
}

// Empty 没有任何过滤与排序
func (s Spec) Empty() bool {
	return len(s.Where) == 0 && s.Order == nil
}
