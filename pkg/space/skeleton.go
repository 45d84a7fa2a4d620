package space

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Skeleton errors.
var (
	ErrUnknownBone        = errors.New("unknown bone")
	ErrIncompleteSkeleton = errors.New("bone parent is not in skeleton")
	ErrCyclicSkeleton     = errors.New("bone hierarchy contains a cycle")
	ErrDuplicateBone      = errors.New("duplicate bone name")
	ErrSkeletonTooDeep    = errors.New("bone chain exceeds maximum depth")
)

// MaxBoneDepth is the longest parent chain a skeleton may have, counted in
// ancestors of a bone.
const MaxBoneDepth = 256

// Bone is one editor-space bone.
type Bone struct {
	Name   string
	Parent string     // empty for root bones
	Local  mgl64.Mat4 // rest pose relative to the armature (edit bone matrix)
	Basis  mgl64.Mat4 // pose relative to the rest pose
}

// Skeleton is a validated bone forest.
type Skeleton struct {
	bones map[string]*Bone
	order []string // parents before children
}

// NewSkeleton copies bones into a skeleton after checking that every parent
// exists, the hierarchy is acyclic and no chain is deeper than MaxBoneDepth.
func NewSkeleton(bones []Bone) (*Skeleton, error) {
	s := &Skeleton{bones: make(map[string]*Bone, len(bones))}
	for i := range bones {
		b := bones[i]
		if _, ok := s.bones[b.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBone, b.Name)
		}
		s.bones[b.Name] = &b
	}

	for _, b := range bones {
		if b.Parent != "" {
			if _, ok := s.bones[b.Parent]; !ok {
				return nil, fmt.Errorf("%w: %q has parent %q", ErrIncompleteSkeleton, b.Name, b.Parent)
			}
		}
	}

	// Depth-first ordering; a bone seen again while still on the stack is a cycle.
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(bones))
	depth := make(map[string]int, len(bones))
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: at %q", ErrCyclicSkeleton, name)
		}
		state[name] = visiting
		if parent := s.bones[name].Parent; parent != "" {
			if err := visit(parent); err != nil {
				return err
			}
			depth[name] = depth[parent] + 1
			if depth[name] > MaxBoneDepth {
				return fmt.Errorf("%w: %q is %d bones deep", ErrSkeletonTooDeep, name, depth[name])
			}
		}
		state[name] = done
		s.order = append(s.order, name)
		return nil
	}
	for _, b := range bones {
		if err := visit(b.Name); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Bone returns the named bone.
func (s *Skeleton) Bone(name string) (Bone, bool) {
	b, ok := s.bones[name]
	if !ok {
		return Bone{}, false
	}
	return *b, true
}

// Names returns bone names with every parent before its children.
func (s *Skeleton) Names() []string {
	return append([]string(nil), s.order...)
}

// SetBasis replaces a bone's pose basis.
func (s *Skeleton) SetBasis(name string, basis mgl64.Mat4) error {
	b, ok := s.bones[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBone, name)
	}
	b.Basis = basis
	return nil
}

// ArmatureMatrix returns the bone's pose in armature space using its current basis:
//
//	root:  local * basis
//	child: parentArmature * parentLocal^-1 * local * basis
func (s *Skeleton) ArmatureMatrix(name string) (mgl64.Mat4, error) {
	b, ok := s.bones[name]
	if !ok {
		return mgl64.Mat4{}, fmt.Errorf("%w: %q", ErrUnknownBone, name)
	}
	return s.armatureMatrix(b, b.Basis, 0)
}

// ArmatureMatrixWithBasis is ArmatureMatrix with basis overriding the bone's
// own basis. Ancestors keep their current bases.
func (s *Skeleton) ArmatureMatrixWithBasis(name string, basis mgl64.Mat4) (mgl64.Mat4, error) {
	b, ok := s.bones[name]
	if !ok {
		return mgl64.Mat4{}, fmt.Errorf("%w: %q", ErrUnknownBone, name)
	}
	return s.armatureMatrix(b, basis, 0)
}

func (s *Skeleton) armatureMatrix(b *Bone, basis mgl64.Mat4, depth int) (mgl64.Mat4, error) {
	if depth > MaxBoneDepth {
		return mgl64.Mat4{}, fmt.Errorf("%w: at %q", ErrSkeletonTooDeep, b.Name)
	}
	if b.Parent == "" {
		return b.Local.Mul4(basis), nil
	}
	parent := s.bones[b.Parent]
	parentArmature, err := s.armatureMatrix(parent, parent.Basis, depth+1)
	if err != nil {
		return mgl64.Mat4{}, err
	}
	return parentArmature.Mul4(parent.Local.Inv()).Mul4(b.Local).Mul4(basis), nil
}

// PoseCache memoizes inverted matrices across calls to BasisMatrix so
// siblings do not invert the same parent matrices again. A cache is only
// valid for one frame of armature matrices.
type PoseCache struct {
	LocalInv    map[string]mgl64.Mat4
	ArmatureInv map[string]mgl64.Mat4
}

// NewPoseCache returns an empty cache.
func NewPoseCache() *PoseCache {
	return &PoseCache{
		LocalInv:    make(map[string]mgl64.Mat4),
		ArmatureInv: make(map[string]mgl64.Mat4),
	}
}

// SetArmature records a bone's target armature matrix for the current frame
// so its children can be solved against it.
func (c *PoseCache) SetArmature(name string, armature mgl64.Mat4) {
	c.ArmatureInv[name] = armature.Inv()
}

func (c *PoseCache) localInv(b *Bone) mgl64.Mat4 {
	inv, ok := c.LocalInv[b.Name]
	if !ok {
		inv = b.Local.Inv()
		c.LocalInv[b.Name] = inv
	}
	return inv
}

// BasisMatrix solves for the basis that puts the bone at armature in
// armature space. It inverts ArmatureMatrix:
//
//	root:  local^-1 * armature
//	child: local^-1 * parentLocal * parentArmature^-1 * armature
//
// The parent's armature matrix is taken from cache when present (see
// SetArmature), otherwise computed from the skeleton's current pose.
func (s *Skeleton) BasisMatrix(name string, armature mgl64.Mat4, cache *PoseCache) (mgl64.Mat4, error) {
	b, ok := s.bones[name]
	if !ok {
		return mgl64.Mat4{}, fmt.Errorf("%w: %q", ErrUnknownBone, name)
	}
	if cache == nil {
		cache = NewPoseCache()
	}

	localInv := cache.localInv(b)
	if b.Parent == "" {
		return localInv.Mul4(armature), nil
	}

	parent := s.bones[b.Parent]
	parentArmatureInv, ok := cache.ArmatureInv[parent.Name]
	if !ok {
		parentArmature, err := s.armatureMatrix(parent, parent.Basis, 0)
		if err != nil {
			return mgl64.Mat4{}, err
		}
		parentArmatureInv = parentArmature.Inv()
		cache.ArmatureInv[parent.Name] = parentArmatureInv
	}
	return localInv.Mul4(parent.Local).Mul4(parentArmatureInv).Mul4(armature), nil
}

// BasisMatrices solves the basis of every bone named in armature for one
// frame. Bones missing from armature are skipped; their children are solved
// against the parent's current pose.
func (s *Skeleton) BasisMatrices(armature map[string]mgl64.Mat4) (map[string]mgl64.Mat4, error) {
	cache := NewPoseCache()
	for name, m := range armature {
		if _, ok := s.bones[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBone, name)
		}
		cache.SetArmature(name, m)
	}

	out := make(map[string]mgl64.Mat4, len(armature))
	for _, name := range s.order {
		m, ok := armature[name]
		if !ok {
			continue
		}
		basis, err := s.BasisMatrix(name, m, cache)
		if err != nil {
			return nil, err
		}
		out[name] = basis
	}
	return out, nil
}
