package transcript

import "github.com/patrickprogramme/limescribe/pkg/timecode"

// ApplyOffset retourne un nouveau Document dont chaque enregistrement est
// décalé de offset, marqueur de début compris. Fonction pure : d n'est pas
// modifié, appliquer deux décalages successifs équivaut à appliquer leur
// somme.
func ApplyOffset(d Document, offset timecode.Timecode, rate timecode.Rate) Document {
	out := Document{
		Start:   d.Start.Add(offset, rate),
		Records: make([]Record, len(d.Records)),
	}
	for i, r := range d.Records {
		r.Start = r.Start.Add(offset, rate)
		out.Records[i] = r
	}
	return out
}
