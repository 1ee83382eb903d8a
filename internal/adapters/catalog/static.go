package catalog

import "sync"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog, built once. It covers the
// players the curated presets reference, with approximate career
// totals; deployments wanting the full historical set load a CSV.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(defaultPlayers)
	})
	return defaultCatalog
}

// Field order: id, name, position, team, from, to, games, points,
// rebounds, assists, win shares.
var defaultPlayers = []Player{
	{"abdulka01", "Kareem Abdul-Jabbar", "C", "LAL", 1970, 1989, 1560, 38387, 17440, 5660, 273.4},
	{"jamesle01", "LeBron James", "SF", "LAL", 2004, 2025, 1562, 42184, 11731, 11584, 270.3},
	{"chambwi01", "Wilt Chamberlain", "C", "PHI", 1960, 1973, 1045, 31419, 23924, 4643, 247.3},
	{"malonka01", "Karl Malone", "PF", "UTA", 1986, 2004, 1476, 36928, 14968, 5248, 234.6},
	{"jordami01", "Michael Jordan", "SG", "CHI", 1985, 2003, 1072, 32292, 6672, 5633, 214.0},
	{"stockjo01", "John Stockton", "PG", "UTA", 1985, 2003, 1504, 19711, 4051, 15806, 207.7},
	{"duncati01", "Tim Duncan", "PF", "SAS", 1998, 2016, 1392, 26496, 15091, 4225, 206.4},
	{"nowitdi01", "Dirk Nowitzki", "PF", "DAL", 1999, 2019, 1522, 31560, 11489, 3651, 206.3},
	{"paulch01", "Chris Paul", "PG", "SAS", 2006, 2025, 1354, 23115, 5281, 12499, 192.0},
	{"garneke01", "Kevin Garnett", "PF", "MIN", 1996, 2016, 1462, 26071, 14662, 5445, 191.4},
	{"roberos01", "Oscar Robertson", "PG", "CIN", 1961, 1974, 1040, 26710, 7804, 9887, 189.2},
	{"onealsh01", "Shaquille O'Neal", "C", "LAL", 1993, 2011, 1207, 28596, 13099, 3026, 181.7},
	{"ervinju01", "Julius Erving", "SF", "PHI", 1972, 1987, 1243, 30026, 10525, 5176, 181.1},
	{"malonmo01", "Moses Malone", "C", "HOU", 1975, 1995, 1455, 29580, 17834, 1936, 179.4},
	{"robinda01", "David Robinson", "C", "SAS", 1990, 2003, 987, 20790, 10497, 2441, 178.7},
	{"barklch01", "Charles Barkley", "PF", "PHO", 1985, 2000, 1073, 23757, 12546, 4215, 177.2},
	{"millere01", "Reggie Miller", "SG", "IND", 1988, 2005, 1389, 25279, 4182, 4141, 174.4},
	{"bryanko01", "Kobe Bryant", "SG", "LAL", 1997, 2016, 1346, 33643, 7047, 6306, 172.7},
	{"russewi01", "Bill Russell", "C", "BOS", 1957, 1969, 963, 14522, 21620, 4100, 163.5},
	{"olajuha01", "Hakeem Olajuwon", "C", "HOU", 1985, 2002, 1238, 26946, 13748, 3058, 162.8},
	{"westje01", "Jerry West", "PG", "LAL", 1961, 1974, 932, 25192, 5366, 6238, 162.6},
	{"curryst01", "Stephen Curry", "PG", "GSW", 2010, 2025, 1026, 25386, 4822, 6534, 162.1},
	{"duranke01", "Kevin Durant", "SF", "PHO", 2008, 2025, 1122, 30571, 7862, 4886, 160.9},
	{"johnsma02", "Magic Johnson", "PG", "LAL", 1980, 1996, 906, 17707, 6559, 10141, 155.8},
	{"hardeja01", "James Harden", "SG", "LAC", 2010, 2025, 1143, 26922, 6339, 8087, 154.8},
	{"piercpa01", "Paul Pierce", "SF", "BOS", 1999, 2017, 1343, 26397, 7527, 4708, 150.0},
	{"parisro01", "Robert Parish", "C", "BOS", 1977, 1997, 1611, 23334, 14715, 2180, 147.0},
	{"birdla01", "Larry Bird", "SF", "BOS", 1980, 1992, 897, 21791, 8974, 5695, 145.8},
	{"paytoga01", "Gary Payton", "PG", "SEA", 1991, 2007, 1335, 21813, 5269, 8966, 145.5},
	{"allenra02", "Ray Allen", "SG", "BOS", 1997, 2014, 1300, 24505, 5272, 4361, 145.1},
	{"howardw01", "Dwight Howard", "C", "ORL", 2005, 2022, 1242, 19485, 14627, 1666, 141.9},
	{"kiddja01", "Jason Kidd", "PG", "NJN", 1995, 2013, 1391, 17529, 8725, 12091, 138.6},
	{"jokicni01", "Nikola Jokic", "C", "DEN", 2016, 2025, 743, 15822, 7736, 5255, 137.8},
	{"drexlcl01", "Clyde Drexler", "SG", "POR", 1984, 1998, 1086, 22195, 6677, 6125, 135.6},
	{"gervige01", "George Gervin", "SG", "SAS", 1973, 1986, 1060, 26595, 5602, 2798, 134.3},
	{"dantlad01", "Adrian Dantley", "SF", "UTA", 1977, 1991, 955, 23177, 5455, 2830, 134.0},
	{"havlijo01", "John Havlicek", "SF", "BOS", 1963, 1978, 1270, 26395, 8007, 6114, 131.7},
	{"nashst01", "Steve Nash", "PG", "PHO", 1997, 2014, 1217, 17387, 3642, 10335, 129.7},
	{"antetgi01", "Giannis Antetokounmpo", "PF", "MIL", 2014, 2025, 851, 19731, 8197, 4204, 129.4},
	{"barryri01", "Rick Barry", "SF", "GSW", 1966, 1980, 1020, 25279, 6863, 4952, 127.6},
	{"englial01", "Alex English", "SF", "DEN", 1977, 1991, 1193, 25613, 6538, 4351, 126.8},
	{"ewingpa01", "Patrick Ewing", "C", "NYK", 1986, 2002, 1183, 24815, 11607, 2215, 126.4},
	{"pippesc01", "Scottie Pippen", "SF", "CHI", 1988, 2004, 1178, 18940, 7494, 6135, 125.1},
	{"wadedw01", "Dwyane Wade", "SG", "MIA", 2004, 2019, 1054, 23165, 4933, 5701, 120.7},
	{"westbru01", "Russell Westbrook", "PG", "DEN", 2009, 2025, 1210, 25211, 8854, 9649, 119.4},
	{"wilkido01", "Dominique Wilkins", "SF", "ATL", 1983, 1999, 1074, 26668, 7169, 2677, 117.5},
	{"lillada01", "Damian Lillard", "PG", "MIL", 2013, 2025, 914, 23171, 3827, 6174, 116.2},
	{"fraziwl01", "Walt Frazier", "PG", "NYK", 1968, 1980, 825, 15581, 4830, 5040, 113.4},
	{"davisan02", "Anthony Davis", "PF", "DAL", 2013, 2025, 803, 19417, 8475, 2080, 113.1},
	{"mchalke01", "Kevin McHale", "PF", "BOS", 1981, 1993, 971, 17335, 7122, 1670, 113.0},
	{"butleji01", "Jimmy Butler", "SF", "GSW", 2012, 2025, 872, 15661, 4624, 3709, 112.3},
	{"derozde01", "DeMar DeRozan", "SG", "SAC", 2010, 2025, 1152, 25233, 5030, 4687, 110.6},
	{"leonaka01", "Kawhi Leonard", "SF", "LAC", 2012, 2025, 738, 14929, 4760, 2252, 106.6},
	{"boshch01", "Chris Bosh", "PF", "MIA", 2004, 2016, 893, 17189, 7592, 1795, 106.0},
	{"richmmi01", "Mitch Richmond", "SG", "SAC", 1989, 2002, 976, 20497, 3801, 3398, 105.6},
	{"anthoca01", "Carmelo Anthony", "SF", "NYK", 2004, 2022, 1260, 28289, 7808, 3517, 102.0},
	{"hillgr01", "Grant Hill", "SF", "DET", 1995, 2013, 1026, 17137, 6169, 4252, 99.9},
	{"iveral01", "Allen Iverson", "PG", "PHI", 1997, 2010, 914, 24368, 3394, 5624, 99.0},
	{"lowryky01", "Kyle Lowry", "PG", "PHI", 2007, 2025, 1174, 16171, 4755, 7023, 97.8},
	{"johnske02", "Kevin Johnson", "PG", "PHO", 1988, 2000, 735, 13127, 2427, 6711, 94.4},
	{"mullich01", "Chris Mullin", "SF", "GSW", 1986, 2001, 986, 17911, 4034, 3450, 93.4},
	{"kingbe01", "Bernard King", "SF", "NYK", 1978, 1993, 874, 19655, 5060, 2863, 92.4},
	{"irvinky01", "Kyrie Irving", "PG", "DAL", 2012, 2025, 822, 19301, 3234, 4687, 91.4},
	{"kempsh01", "Shawn Kemp", "PF", "SEA", 1990, 2003, 1051, 15347, 8834, 1704, 90.1},
	{"georgpa01", "Paul George", "SF", "PHI", 2011, 2025, 912, 18632, 5782, 3380, 89.9},
	{"moncrsi01", "Sidney Moncrief", "SG", "MIL", 1980, 1991, 767, 11931, 3575, 2793, 89.7},
	{"mournal01", "Alonzo Mourning", "C", "MIA", 1993, 2008, 838, 14311, 7137, 1222, 89.7},
	{"townska01", "Karl-Anthony Towns", "C", "NYK", 2016, 2025, 699, 16091, 7565, 2156, 86.7},
	{"cowenda01", "Dave Cowens", "C", "BOS", 1971, 1983, 766, 13516, 10444, 2910, 86.3},
	{"westda01", "David West", "PF", "SAS", 2004, 2018, 1034, 14034, 6602, 2338, 85.0},
	{"hardati01", "Tim Hardaway", "PG", "MIA", 1990, 2003, 867, 15373, 2855, 7095, 84.9},
	{"webbech01", "Chris Webber", "PF", "SAC", 1994, 2008, 831, 17182, 8124, 3526, 84.7},
	{"archibti01", "Nate Archibald", "PG", "BOS", 1971, 1984, 876, 16481, 2046, 6476, 83.2},
	{"worthja01", "James Worthy", "SF", "LAL", 1983, 1994, 926, 16320, 4708, 2791, 81.2},
	{"thomais01", "Isiah Thomas", "PG", "DET", 1982, 1994, 979, 18822, 3478, 9061, 80.7},
	{"tatumja01", "Jayson Tatum", "SF", "BOS", 2018, 2025, 595, 13729, 4435, 2443, 75.2},
	{"doncilu01", "Luka Doncic", "PG", "LAL", 2019, 2025, 450, 12936, 3904, 3644, 67.9},
	{"adebaba01", "Bam Adebayo", "C", "MIA", 2018, 2025, 582, 9124, 5438, 2102, 66.9},
	{"embiijo01", "Joel Embiid", "C", "PHI", 2017, 2025, 452, 12519, 5053, 1665, 65.9},
	{"gilgesh01", "Shai Gilgeous-Alexander", "PG", "OKC", 2019, 2025, 480, 12001, 2314, 2512, 63.8},
	{"bookede01", "Devin Booker", "SG", "PHO", 2016, 2025, 642, 15391, 2681, 3338, 63.5},
	{"mitchdo01", "Donovan Mitchell", "SG", "CLE", 2018, 2025, 541, 13501, 2348, 2587, 62.8},
	{"youngtr01", "Trae Young", "PG", "ATL", 2019, 2025, 494, 12489, 1452, 4747, 49.8},
	{"brownja02", "Jaylen Brown", "SG", "BOS", 2017, 2025, 589, 11230, 3396, 1714, 44.1},
	{"edwaran01", "Anthony Edwards", "SG", "MIN", 2021, 2025, 389, 9373, 2067, 1688, 36.4},
	{"morantja01", "Ja Morant", "PG", "MEM", 2020, 2025, 349, 7852, 1603, 2619, 31.9},
}
