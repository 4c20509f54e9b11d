package schema

import (
	"fmt"
	"strings"
)

// RenderOptions hold the input plugin parameters baked into the
// generated collector configuration.
type RenderOptions struct {
	Type    string // "udp" or "tcp"
	Port    int
	Address string
}

// GenerateSchema renders the CREATE TABLE document for the fields,
// with per-column comments and commented index/partition tips.
func GenerateSchema(fields []Field) string {
	flowstart := FindField(fields, []string{"iana:flowStartSeconds", "iana:flowStartMilliseconds",
		"iana:flowStartMicroseconds", "iana:flowStartNanoseconds"})
	srcip := FindField(fields, []string{"iana:sourceIPv4Address", "iana:sourceIPv6Address"})
	dstip := FindField(fields, []string{"iana:destinationIPv4Address", "iana:destinationIPv6Address"})

	var b strings.Builder
	b.WriteString("CREATE TABLE flows(\n")
	for i, field := range fields {
		ending := ","
		if i == len(fields)-1 {
			ending = ""
		}
		fmt.Fprintf(&b, "    %q %s%s", field.Name, field.DataType, ending)
		if comment := field.Comment(); comment != "" {
			fmt.Fprintf(&b, " -- %s", comment)
		}
		b.WriteString("\n")
	}
	b.WriteString("    -- Tip: You may also want to add indexes for better lookup performance\n")
	if srcip != nil {
		fmt.Fprintf(&b, "    -- INDEX %q %q TYPE bloom_filter GRANULARITY 16,\n", srcip.Name+"_index", srcip.Name)
	}
	if dstip != nil {
		fmt.Fprintf(&b, "    -- INDEX %q %q TYPE bloom_filter GRANULARITY 16,\n", dstip.Name+"_index", dstip.Name)
	}
	if srcip == nil && dstip == nil {
		b.WriteString("    -- e.g.: INDEX \"srcip_index\" \"srcip\" TYPE bloom_filter GRANULARITY 16,\n")
		b.WriteString("    --       INDEX \"dstip_index\" \"dstip\" TYPE bloom_filter GRANULARITY 16,\n")
	}
	b.WriteString(")\n")
	b.WriteString("ENGINE MergeTree\n")
	b.WriteString(" -- Tip: You may also want to partition and order by flow timestamps\n")
	if flowstart != nil {
		fmt.Fprintf(&b, " -- PARTITION BY toStartOfInterval(%q, INTERVAL 1 HOUR)\n", flowstart.Name)
		fmt.Fprintf(&b, " -- ORDER BY %q\n", flowstart.Name)
	} else {
		b.WriteString(" -- e.g.: PARTITION BY toStartOfInterval(\"flowstart\", INTERVAL 1 HOUR)\n")
		b.WriteString(" --       ORDER BY \"flowstart\"\n")
	}
	return strings.TrimSpace(b.String())
}

// GenerateConfig renders the collector pipeline configuration with a
// ClickHouse output column per field. Connection parameters are left
// as CHANGEME placeholders for the operator.
func GenerateConfig(opts RenderOptions, fields []Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<ipfixcol2>
    <inputPlugins>
        <input>
            <name>%s input plugin</name>
            <plugin>%s</plugin>
            <params>
                <localPort>%d</localPort>
                <localIPAddress>%s</localIPAddress>
            </params>
        </input>
    </inputPlugins>
    <outputPlugins>
        <output>
            <name>ClickHouse output</name>
            <plugin>clickhouse</plugin>
            <params>
                <connection>
                    <endpoints>
                        <!-- One or more ClickHouse databases (endpoints) -->
                        <endpoint>
                            <host>CHANGEME.com</host>
                            <port>9000</port>
                        </endpoint>
                    </endpoints>
                    <user>CHANGEME</user>
                    <password>CHANGEME</password>
                    <database>CHANGEME</database>
                    <table>flows</table>
                </connection>
                <inserterThreads>16</inserterThreads>
                <blocks>128</blocks>
                <blockInsertThreshold>500000</blockInsertThreshold>
                <splitBiflow>true</splitBiflow>
                <nonblocking>true</nonblocking>
                <columns>
`, opts.Type, opts.Type, opts.Port, opts.Address)
	for _, field := range fields {
		b.WriteString("                    <column>\n")
		fmt.Fprintf(&b, "                        <name>%s</name>\n", field.Name)
		fmt.Fprintf(&b, "                        <source>%s</source>\n", field.Name)
		if comment := field.Comment(); comment != "" {
			fmt.Fprintf(&b, "                        <!-- %s -->\n", comment)
		}
		b.WriteString("                    </column>\n")
	}
	b.WriteString(`                </columns>
            </params>
        </output>
    </outputPlugins>
</ipfixcol2>`)
	return b.String()
}
