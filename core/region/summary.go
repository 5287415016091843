package region

// Summary aggregates a Collection for reports.
type Summary struct {
	Records int `json:"records"`
	Sectors int `json:"sectors"`
	// EncodedSize is the size in bytes Encode would produce.
	EncodedSize int    `json:"encoded_size"`
	Oldest      uint32 `json:"oldest"`
	Newest      uint32 `json:"newest"`
}

// Summarize computes the Summary of c.
func Summarize(c Collection) Summary {
	s := Summary{Records: len(c)}
	first := true
	for _, rec := range c {
		s.Sectors += rec.Sectors
		if first || rec.Timestamp < s.Oldest {
			s.Oldest = rec.Timestamp
		}
		if first || rec.Timestamp > s.Newest {
			s.Newest = rec.Timestamp
		}
		first = false
	}
	s.EncodedSize = HeaderSize + s.Sectors*SectorSize
	return s
}
