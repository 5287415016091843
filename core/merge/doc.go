// Package merge combines two region record collections under a conflict rule.
//
// Merge takes exclusive ownership of the target collection and reads the
// source collection. Every source slot missing from the target is
// inserted; every slot present on both sides is handed to the Rule, which
// decides whether the incoming record replaces the existing one. Inserted
// and replacing records are cloned, so the two collections never share
// payload memory afterwards.
//
// # Rules
//
//   - NewestWins: replace when the incoming timestamp is strictly newer.
//   - AlwaysReplace: the source always wins.
//   - NeverReplace: the target always wins; source-only slots still propagate.
//
// ParseRule resolves the configuration names ("last-modified", "always",
// "never") into a Rule. The engine itself never sees names.
package merge
