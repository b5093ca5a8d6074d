package didht

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// RecordTTL is the TTL, in seconds, of every published record.
	RecordTTL = 7200
	// RecordTypeTXT is the only record type emitted.
	RecordTypeTXT = "TXT"

	// RootRData declares protocol version 0 with k0 as the single
	// verification and authentication method.
	RootRData = "v=0;vm=k0;auth=k0;"
)

// Record is one DNS-style TXT entry of a resolution record set.
type Record struct {
	Name  string
	Type  string
	TTL   int
	RData string
}

// String renders the record as a single envelope line, without terminator.
func (r Record) String() string {
	return r.Name + " " + r.Type + " " + strconv.Itoa(r.TTL) + " " + r.RData
}

// RootName is the owner name of the root record for an encoded key.
func RootName(encodedKey string) string {
	return "_did." + encodedKey + "."
}

// KeyName is the owner name of the k0 verification method record.
func KeyName(encodedKey string) string {
	return "_k0._did." + encodedKey + "."
}

// Records returns the resolution record set for pub: the root record first,
// then the k0 key record.
func Records(pub []byte) []Record {
	encoded := EncodeKey(pub)
	return []Record{
		{
			Name:  RootName(encoded),
			Type:  RecordTypeTXT,
			TTL:   RecordTTL,
			RData: RootRData,
		},
		{
			Name:  KeyName(encoded),
			Type:  RecordTypeTXT,
			TTL:   RecordTTL,
			RData: "id=0;t=0;k=" + hex.EncodeToString(pub),
		},
	}
}

// Envelope serializes records into the bytes handed to the DHT: one
// "name type ttl rdata" line per record, each newline-terminated.
func Envelope(records []Record) []byte {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

var nameToken = regexp.MustCompile(`^_[^\s]+$`)

// ParseEnvelope reverses Envelope. A record starts at every token matching
// ^_[^\s]+$; the three tokens after it are type, ttl and rdata.
func ParseEnvelope(data []byte) ([]Record, error) {
	fields := strings.Fields(string(data))
	var records []Record
	for i := 0; i < len(fields); {
		if !nameToken.MatchString(fields[i]) {
			return nil, fmt.Errorf("envelope token %d: expected record name, got %q", i, fields[i])
		}
		if i+3 >= len(fields) {
			return nil, fmt.Errorf("envelope record %q is truncated", fields[i])
		}
		ttl, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return nil, fmt.Errorf("envelope record %q: bad ttl %q: %w", fields[i], fields[i+2], err)
		}
		records = append(records, Record{
			Name:  fields[i],
			Type:  fields[i+1],
			TTL:   ttl,
			RData: fields[i+3],
		})
		i += 4
	}
	return records, nil
}

// ParseRData splits a "k1=v1;k2=v2;" rdata string into its pairs.
func ParseRData(rdata string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(rdata, ";") {
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("malformed rdata pair %q", pair)
		}
		out[k] = v
	}
	return out, nil
}
