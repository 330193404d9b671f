package validation

import "github.com/shopspring/decimal"

// Object reads fields out of a decoded JSON object and records the issues of
// every field it reads. Nested objects and array elements share the issue
// list of their root, so the root's Issues covers the whole document.
//
// An Object whose own value was missing or not an object is dead: the problem
// is reported once at its path and reads of its fields record nothing more.
type Object struct {
	fields map[string]any
	path   Path
	issues *Issues
	dead   bool
}

// Root starts reading raw, which must be a JSON object. Anything else is
// recorded as a root-level issue with msg and yields a dead object.
func Root(raw any, msg string) *Object {
	o := &Object{path: Path{}, issues: &Issues{}}
	o.fields, o.dead = o.asObject(raw, Path{}, msg)
	return o
}

// Issues returns all issues recorded so far.
func (o *Object) Issues() Issues {
	return *o.issues
}

// Path returns the location of this object in the document.
func (o *Object) Path() Path {
	return o.path
}

// String parses field key with rule.
func (o *Object) String(key string, rule *StringRule) string {
	if o.dead {
		return ""
	}
	raw, ok := o.fields[key]
	v, failed := rule.Parse(raw, ok)
	o.add(o.path.Key(key), failed)
	return v
}

// Number parses field key with rule.
func (o *Object) Number(key string, rule *NumberRule) decimal.Decimal {
	if o.dead {
		return decimal.Zero
	}
	raw, ok := o.fields[key]
	v, failed := rule.Parse(raw, ok)
	o.add(o.path.Key(key), failed)
	return v
}

// Object descends into the nested object at key.
func (o *Object) Object(key string, m Messages) *Object {
	p := o.path.Key(key)
	child := &Object{path: p, issues: o.issues, dead: true}
	if o.dead {
		return child
	}
	raw, ok := o.fields[key]
	if !ok {
		o.add(p, []string{m.Required})
		return child
	}
	child.fields, child.dead = o.asObject(raw, p, m.Invalid)
	return child
}

// ArrayRule describes an array of objects.
type ArrayRule struct {
	Messages
	Min            int
	MinMessage     string
	ElementInvalid string
}

// Objects descends into the array of objects at key. Elements that are not
// objects are reported at their index and come back dead, so the
// returned slice always has one entry per submitted element.
func (o *Object) Objects(key string, rule ArrayRule) []*Object {
	if o.dead {
		return nil
	}
	p := o.path.Key(key)
	raw, ok := o.fields[key]
	if !ok {
		o.add(p, []string{rule.Required})
		return nil
	}
	elems, ok := raw.([]any)
	if !ok {
		o.add(p, []string{rule.Invalid})
		return nil
	}
	if len(elems) < rule.Min {
		o.add(p, []string{rule.MinMessage})
	}
	out := make([]*Object, 0, len(elems))
	for i, e := range elems {
		ep := p.Index(i)
		child := &Object{path: ep, issues: o.issues}
		child.fields, child.dead = o.asObject(e, ep, rule.ElementInvalid)
		out = append(out, child)
	}
	return out
}

func (o *Object) asObject(raw any, p Path, msg string) (map[string]any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		o.add(p, []string{msg})
		return nil, true
	}
	return m, false
}

func (o *Object) add(p Path, msgs []string) {
	for _, m := range msgs {
		*o.issues = append(*o.issues, Issue{Path: p, Message: m})
	}
}
