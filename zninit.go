// Package zninit synthesizes keyword-only constructors for classes whose
// attributes are declared through descriptors.
//
// A Class is built at declaration time from an ordered list of descriptor
// attributes and an optional parent. On first instantiation the class walks
// its ancestry, merges the declared descriptors with override semantics,
// partitions them into required and defaulted groups, and caches the
// resulting constructor signature. Every construction then validates the
// supplied keywords against that signature, assigns each value through the
// descriptor's write path, and finally runs the post-construction hook.
package zninit

import "go.uber.org/zap"

// log is the package logger. It discards everything by default.
var log = zap.NewNop()

// SetLogger replaces the package logger. Call it before building classes;
// the logger is not otherwise synchronized.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}
