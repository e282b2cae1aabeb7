// Package engine derives the rendering engine of a classified client and the
// engine's own version.
//
// The engine name is resolved in three tiers:
//
//  1. the rule's static default engine, when it has one;
//  2. the rule's version overrides, walked in declaration order: every
//     override whose threshold is lower than or equal to the client version
//     replaces the current answer, so the last qualifying override wins and
//     a qualifying override beats the default. Thresholds should be written
//     in ascending order for this to read as "highest satisfied threshold";
//  3. when nothing is known yet, an independent cascade over the engine
//     rule-set run against the original input.
//
// Once a name is known, the engine version is read from the input with a
// matcher scoped to that engine. Neither step fails: an undetermined engine
// or engine version is the empty string.
package engine
