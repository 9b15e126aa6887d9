package models

import (
	"crypto/md5" //nolint:gosec // дайджест для обнаружения изменений, не для безопасности
	"encoding/hex"
	"hash"
	"io"
	"strings"
)

// IgnoredCheckSum disables the concurrency check for the Data carrying it
const IgnoredCheckSum = "*"

// CheckSum returns the stored checksum, "" when not calculated
func (d *Data) CheckSum() string {
	if d == nil {
		return ""
	}
	return d.checkSum
}

// SetCheckSum stores a checksum received from elsewhere
func (d *Data) SetCheckSum(checkSum string) {
	d.checkSum = checkSum
}

// IgnoreCheckSum marks the data so that concurrency checks are skipped
func (d *Data) IgnoreCheckSum() {
	d.checkSum = IgnoredCheckSum
}

// ShouldCheckSumBeIgnored reports whether IgnoreCheckSum was called
func (d *Data) ShouldCheckSumBeIgnored() bool {
	return d != nil && d.checkSum == IgnoredCheckSum
}

// CalculateCheckSum computes the digest of the tree and the key value.
// A stored checksum is returned as is unless recalculate is set.
func (d *Data) CalculateCheckSum(keyValue string, recalculate bool) string {
	return d.CalculateCheckSumWithBlackList(nil, keyValue, recalculate)
}

// CalculateCheckSumWithBlackList is CalculateCheckSum skipping blacklisted properties.
// An entry with a dot is a full path ("Address.ZipCode"); an entry
// without a dot matches that name at every level.
func (d *Data) CalculateCheckSumWithBlackList(blackList []string, keyValue string, recalculate bool) string {
	if d != nil && d.checkSum != "" && !recalculate {
		return d.checkSum
	}

	h := md5.New() //nolint:gosec
	d.writeDigest(h, "", newBlackList(blackList))
	_, _ = io.WriteString(h, keyValue)
	sum := hex.EncodeToString(h.Sum(nil))

	if d != nil {
		d.checkSum = sum
	}
	return sum
}

func (d *Data) writeDigest(h hash.Hash, prefix string, bl blackList) {
	if d == nil {
		return
	}
	for _, p := range d.sortedProperties() {
		if bl.excludes(prefix, p.name) {
			continue
		}
		writeField(h, fold(p.name))
		writeField(h, p.value)
	}
	for _, n := range d.sortedNested() {
		if bl.excludes(prefix, n.name) {
			continue
		}
		_, _ = io.WriteString(h, "{")
		writeField(h, fold(n.name))
		n.data.writeDigest(h, joinPath(prefix, n.name), bl)
		_, _ = io.WriteString(h, "}")
	}
}

// writeField пишет значение с завершающим нулевым байтом, чтобы "ab"+"c" != "a"+"bc"
func writeField(h hash.Hash, s string) {
	_, _ = io.WriteString(h, s)
	_, _ = h.Write([]byte{0})
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + PathSeparator + name
}

type blackList struct {
	paths map[string]struct{}
	names map[string]struct{}
}

func newBlackList(entries []string) blackList {
	bl := blackList{}
	for _, e := range entries {
		if e == "" {
			continue
		}
		if strings.Contains(e, PathSeparator) {
			if bl.paths == nil {
				bl.paths = make(map[string]struct{})
			}
			bl.paths[fold(e)] = struct{}{}
			continue
		}
		if bl.names == nil {
			bl.names = make(map[string]struct{})
		}
		bl.names[fold(e)] = struct{}{}
	}
	return bl
}

func (bl blackList) excludes(prefix, name string) bool {
	if _, ok := bl.names[fold(name)]; ok {
		return true
	}
	if bl.paths == nil {
		return false
	}
	_, ok := bl.paths[fold(joinPath(prefix, name))]
	return ok
}
