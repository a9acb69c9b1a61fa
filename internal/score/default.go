package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"log"
	"math"
	"sort"
	"time"

	"git.lost.host/meutraa/eotm/internal/game"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type DefaultScorer struct {
	db *sql.DB
}

// InputsCompact holds one lane's event times. Presses and releases alternate,
// starting with a press.
type InputsCompact struct {
	Lane  int
	Times []float64
}

func compactInputs(inputs []game.Input) []InputsCompact {
	laneCount := 0
	for _, i := range inputs {
		if i.Lane+1 > laneCount {
			laneCount = i.Lane + 1
		}
	}
	ins := make([]InputsCompact, laneCount)
	for lane := range ins {
		ins[lane] = InputsCompact{Lane: lane, Times: []float64{}}
	}
	for _, i := range inputs {
		ins[i.Lane].Times = append(ins[i.Lane].Times, i.Time)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for n, t := range i.Times {
			ins = append(ins, game.Input{Lane: i.Lane, Time: t, Release: n%2 == 1})
		}
	}
	// Lanes are concatenated in order, a stable sort keeps each lane's
	// press before its release when they share a timestamp
	sort.SliceStable(ins, func(a, b int) bool {
		return ins[a].Time < ins[b].Time
	})
	return ins
}

func Open(path string) (*DefaultScorer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open score database %s", path)
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text not null,
		  played integer not null,
		  summary text,
		  inputs bytearray
	  );
	create index if not exists scores_sum on scores(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "unable to create scores table")
	}

	return &DefaultScorer{db: db}, nil
}

func (s *DefaultScorer) Close() error {
	if nil != s.db {
		return s.db.Close()
	}
	return nil
}

// HashChart identifies a chart by its content, so renamed files keep their
// history
func HashChart(c *game.Chart) string {
	data, err := json.Marshal(c)
	if nil != err {
		log.Println("unable to marshal chart for hashing", err)
	}
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultScorer) Save(c *game.Chart, inputs []game.Input, summary Summary) error {
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return errors.Wrap(err, "unable to marshal inputs")
	}
	// Nothing judged, json has no NaN
	if math.IsNaN(summary.Accuracy) {
		summary.Accuracy = 0
	}
	sum, err := json.Marshal(summary)
	if nil != err {
		return errors.Wrap(err, "unable to marshal summary")
	}
	_, err = s.db.Exec(
		"insert into scores(sum, played, summary, inputs) values(?, ?, ?, ?)",
		HashChart(c), time.Now().Unix(), string(sum), data,
	)
	return errors.Wrap(err, "unable to save score")
}

func (s *DefaultScorer) Load(c *game.Chart) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query("select sum, played, summary, inputs from scores where sum = ? order by played, id", HashChart(c))
	if nil != err {
		return histories, errors.Wrap(err, "unable to load scores")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sum, summary string
			played       int64
			inputs       []byte
		)
		if err := rows.Scan(&sum, &played, &summary, &inputs); nil != err {
			log.Println("unable to scan score row", err)
			continue
		}
		var ins []InputsCompact
		if err := json.Unmarshal(inputs, &ins); nil != err {
			log.Println("unable to unmarshal input history", err)
			continue
		}
		h := History{
			Sum:      sum,
			PlayedAt: time.Unix(played, 0),
			Inputs:   uncompactInputs(ins),
		}
		if err := json.Unmarshal([]byte(summary), &h.Summary); nil != err {
			log.Println("unable to unmarshal score summary", err)
		}
		histories = append(histories, h)
	}
	return histories, errors.Wrap(rows.Err(), "unable to read scores")
}
