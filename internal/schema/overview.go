package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jkalina/flowreplay/internal/logging"
)

// ipfixTypeToClickHouse maps IPFIX abstract data types to ClickHouse
// column types. Types without a mapping are skipped with a warning.
var ipfixTypeToClickHouse = map[string]string{
	"unsigned8":            "UInt8",
	"unsigned16":           "UInt16",
	"unsigned32":           "UInt32",
	"unsigned64":           "UInt64",
	"signed8":              "Int8",
	"signed16":             "Int16",
	"signed32":             "Int32",
	"signed64":             "Int64",
	"ipv4Address":          "IPv4",
	"ipv6Address":          "IPv6",
	"string":               "String",
	"dateTimeSeconds":      "DateTime",
	"dateTimeMilliseconds": "DateTime64(3)",
	"dateTimeMicroseconds": "DateTime64(6)",
	"dateTimeNanoseconds":  "DateTime64(9)",
	"macAddress":           "UInt64",
	"float32":              "Float32",
	"float64":              "Float64",
	"octetArray":           "String",
}

// OverviewElement is one field descriptor from the collector's
// overview document.
type OverviewElement struct {
	PEN                int      `json:"pen"`
	ID                 int      `json:"id"`
	Name               *string  `json:"name"`
	DataType           string   `json:"data_type"`
	Aliases            []string `json:"aliases"`
	InPercentOfRecords float64  `json:"in_percent_of_records"`
}

// Overview is the collector's field overview document.
type Overview struct {
	Elements []OverviewElement `json:"elements"`
}

// LoadOverview reads an overview JSON document from disk.
func LoadOverview(path string) (*Overview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overview: %w", err)
	}
	var overview Overview
	if err := json.Unmarshal(data, &overview); err != nil {
		return nil, fmt.Errorf("decode overview: %w", err)
	}
	if len(overview.Elements) == 0 {
		return nil, fmt.Errorf("overview contains no elements; was any flow data received?")
	}
	return &overview, nil
}

func (o *Overview) haveElement(name string) bool {
	for _, elem := range o.Elements {
		if elem.Name != nil && *elem.Name == name {
			return true
		}
	}
	return false
}

// isExclusiveAlias reports whether exactly one element carries the
// alias, making it an unambiguous column name.
func (o *Overview) isExclusiveAlias(alias string) bool {
	count := 0
	for _, elem := range o.Elements {
		for _, a := range elem.Aliases {
			if a == alias {
				count++
			}
		}
	}
	return count == 1
}

// BuildFields turns the overview into an ordered column list. It
// prefers short exclusive aliases over element names, adds the
// synthetic odid column, and collapses the v4/v6 address pair and the
// flow timestamp variants into single columns.
func (o *Overview) BuildFields(log *logging.Logger) []Field {
	fields := []Field{{
		Name:               "odid",
		DataType:           "UInt32",
		Note:               "maps to the ODID the flow originated from",
		InPercentOfRecords: 100.0,
	}}

	for _, elem := range o.Elements {
		if elem.Name == nil {
			log.Warn("Element %d:%d is missing definition - skipping field", elem.PEN, elem.ID)
			continue
		}
		dataType, ok := ipfixTypeToClickHouse[elem.DataType]
		if !ok {
			log.Warn("Element %s has unsupported data type %s - skipping field", *elem.Name, elem.DataType)
			continue
		}

		name := *elem.Name
		var aliasOf []string
		for _, alias := range elem.Aliases {
			// Aliases with a space are inconvenient to use in SQL
			if o.isExclusiveAlias(alias) && !strings.Contains(alias, " ") {
				aliasOf = []string{name}
				name = alias
				break
			}
		}

		fields = append(fields, Field{
			Name:               name,
			DataType:           dataType,
			AliasOf:            aliasOf,
			InPercentOfRecords: elem.InPercentOfRecords,
		})
	}

	if (o.haveElement("iana:sourceIPv4Address") && o.haveElement("iana:sourceIPv6Address")) ||
		(o.haveElement("iana:destinationIPv4Address") && o.haveElement("iana:destinationIPv6Address")) {
		fields = ReplaceFields(fields,
			[]string{"iana:sourceIPv4Address", "iana:sourceIPv6Address"},
			Field{Name: "srcip", DataType: "IPv6", AliasOf: []string{"iana:sourceIPv4Address", "iana:sourceIPv6Address"}})
		fields = ReplaceFields(fields,
			[]string{"iana:destinationIPv4Address", "iana:destinationIPv6Address"},
			Field{Name: "dstip", DataType: "IPv6", AliasOf: []string{"iana:destinationIPv4Address", "iana:destinationIPv6Address"}})
	}

	flowStartVariants := []string{"iana:flowStartSeconds", "iana:flowStartMilliseconds", "iana:flowStartMicroseconds", "iana:flowStartNanoseconds"}
	if o.haveAnyElement(flowStartVariants) {
		fields = ReplaceFields(fields, flowStartVariants,
			Field{Name: "flowstart", DataType: "DateTime64(9)", AliasOf: flowStartVariants})
	}
	flowEndVariants := []string{"iana:flowEndSeconds", "iana:flowEndMilliseconds", "iana:flowEndMicroseconds", "iana:flowEndNanoseconds"}
	if o.haveAnyElement(flowEndVariants) {
		fields = ReplaceFields(fields, flowEndVariants,
			Field{Name: "flowend", DataType: "DateTime64(9)", AliasOf: flowEndVariants})
	}

	return fields
}

func (o *Overview) haveAnyElement(names []string) bool {
	for _, name := range names {
		if o.haveElement(name) {
			return true
		}
	}
	return false
}
