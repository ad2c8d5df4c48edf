// Package genome resolves chromosome sizes for a genome assembly, either
// from a local chrom.sizes file or from the UCSC public MySQL server.
package genome

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/vertgenlab/gonomics/chromInfo"
)

const ucscServer = "genome-mysql.soe.ucsc.edu:3306"

// ReadSizes reads a UCSC chrom.sizes style file, one chromosome name and
// length per line, into a map keyed by chromosome name.
func ReadSizes(filename string) map[string]chromInfo.ChromInfo {
	return chromInfo.ReadToMap(filename)
}

// FetchSizes queries the chromInfo table of the given assembly on the UCSC
// public database server. Assemblies are UCSC database names like hg38 or
// mm39.
func FetchSizes(assembly string) (map[string]chromInfo.ChromInfo, error) {
	db, err := sql.Open("mysql", fmt.Sprintf("genome@tcp(%s)/%s", ucscServer, assembly))
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("cannot reach the UCSC database for assembly %s: %v", assembly, err)
	}
	rows, err := db.Query("SELECT chrom, size FROM chromInfo")
	if err != nil {
		return nil, fmt.Errorf("cannot read chromInfo for assembly %s: %v", assembly, err)
	}
	defer rows.Close()

	ans := make(map[string]chromInfo.ChromInfo)
	for rows.Next() {
		var name string
		var size int
		if err = rows.Scan(&name, &size); err != nil {
			return nil, err
		}
		ans[name] = chromInfo.ChromInfo{Name: name, Size: size}
	}
	return ans, rows.Err()
}
